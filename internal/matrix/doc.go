// Package matrix runs the talker/listener interoperability matrix.
//
// A run has two phases. First every configured base image is built once:
// talker and listener share one image tag per base image, so the same build
// serves every row and column in which that image appears. Then every
// ordered pair of base images, including an image paired with itself, is
// tested in the order returned by Pairs (talker-major, listener-minor).
//
// Testing a pair starts both services detached in a compose project of its
// own, observes the listener output for marker lines, and tears the project
// down again. Teardown runs exactly once for each pair that was started, no
// matter how observation ended, and its failures are logged rather than
// returned.
//
// Pairs run strictly one after another. A build, start or log-follow failure
// stops the whole run; results gathered up to that point are still reported.
package matrix
