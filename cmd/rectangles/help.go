// SPDX-License-Identifier: Unlicense OR MIT

package main

const mainDescription = `The rectangles command reports how two axis-aligned rectangles relate.

A rectangle is written x0,y0,x1,y1: the lower left corner followed by the
upper right corner. Coordinates are non-negative and the upper right corner
must lie strictly above and to the right of the lower left corner.

The relate command prints the overlap region, the points where the edges
cross, which rectangle (if any) strictly contains the other and whether the
two share an edge segment. The overlap, intersections, contains and adjacent
commands print one of those relationships each.

The check command evaluates YAML scenario files of rectangle pairs and their
expected relationships, and exits with status 1 when any expectation fails.

The draw command renders a pair as a PNG diagram, with the overlap region
filled and the intersection points marked.

Settings are read from the environment and from a dotenv file (.env by
default, see --env-file): RECTANGLES_COLOR (auto, always, never),
RECTANGLES_DIAGRAM_SCALE (pixels per unit), RECTANGLES_WORKERS (scenario
concurrency) and RECTANGLES_LOG_LEVEL, RECTANGLES_LOG_FORMAT,
RECTANGLES_LOG_SINK. Flags override the environment.`
