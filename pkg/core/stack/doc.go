// Package stack lays out stacked bars.
//
// # Overview
//
// [Layout] takes the series sharing one stack, a category index, the
// horizontal slot and the y scale, and returns non-overlapping bar
// rectangles plus the stack's bounding rectangle. Bars grow from a baseline
// derived from the y domain ([Baseline]): the domain minimum for
// non-negative domains, the maximum for non-positive ones, zero otherwise.
//
// # Algorithm
//
// Each pass runs these steps in order:
//
//  1. Scalar values stack additively per side of zero. Ranges are placed at
//     their literal position and assigned to the side of their midpoint.
//  2. Scalar bars are pushed StackGap pixels outward for every scalar bar of
//     non-zero height already placed on the same side.
//  3. Bars shorter than BarMinSize grow to it, away from the baseline when
//     they touch it and symmetrically otherwise. The bars are then restacked
//     outward with their original gaps.
//  4. A stack shorter than StackMinSize is scaled uniformly so that bars plus
//     gaps reach the minimum, again keeping the original gaps.
//  5. Corners are rounded on edges that face a visible gap or end the side.
//     RoundBaseline also rounds the edge on the baseline.
//
// Stacks with fewer than two bars skip gaps and restacking. Output order is
// series order and results are identical for identical input.
//
// # Grouping
//
// [Groups] partitions a chart's series by (StackID, YAxisID) and [Slots]
// splits a category band among the groups.
package stack
