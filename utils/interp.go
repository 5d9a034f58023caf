// SPDX-License-Identifier: EPL-2.0

package utils

// CatmullRom evaluates the Catmull-Rom spline through p0..p3 at t in
// [0, 1]. t=0 yields p1 and t=1 yields p2.
func CatmullRom(p0, p1, p2, p3, t float32) float32 {
	return p1 + 0.5*t*(p2-p0+t*(2*p0-5*p1+4*p2-p3+t*(3*(p1-p2)+p3-p0)))
}
