/*
Package particletrack implements particle filter based visual object
tracking.  A population of weighted hypotheses (particles), each an oriented
rectangle candidate for an object's pose, is propagated frame to frame and
re-weighted by how well the image content under each rectangle matches a
learned or reference appearance.

The root package holds the particle ensemble and the oriented rectangle
state model.  The geom subpackage computes rectangle corners and point
containment, the observe subpackage scores particles against PCA subspace or
template appearance models, and the render subpackage draws particles for
debugging.

See example code and usage in the example subdirectory.
*/
package particletrack
