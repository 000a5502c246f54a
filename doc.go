/*
Package monty is the documentation root of a Montgomery-form modular
arithmetic engine. The library features:

  - A width-generic Montgomery reduction core (package montgomery), with
    four modulus-range variants that trade permitted modulus size for
    fewer conditional reductions per operation.
  - A windowed 2^k-ary modular exponentiation engine (package montpow),
    including array and partial-array variants for exponentiating many
    independent bases with shared loop structure.
  - A small analysis package (package montstats) for picking a window
    size from measured operation counts rather than guesswork.

None of the arithmetic paths perform I/O, and the montgomery.Form
primitives do not allocate heap memory. The montpow exponentiation
routines do allocate: their window tables, and the array variants' result
slices, are built with make. Every operation is a pure function of its
inputs and the owning Form's modulus constants.
*/
package monty
