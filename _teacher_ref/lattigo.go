/*
Package lattigo is a cryptographic library implementing lattice-based cryptographic primitives. The library features:

    - A pure Go implementation enabling code-simplicity and easy builds.
    - A public interface for an efficient multi-precision polynomial arithmetic layer.
    - Comparable performance to state-of-the-art C++ libraries.

Lattigo aims at enabling fast prototyping of secure-multiparty computation solutions based on distributed homomorphic cryptosystems, by harnessing Go's natural concurrency model.
*/
package lattigo
