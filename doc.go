// Package huffcodec implements Huffman coding of text.  A code is built from
// the symbol frequencies of a sample text, extracted into a table mapping each
// symbol to a bit string, and that table is then used to compress and
// decompress text into packed bytes.
//
// The pipeline is:
//
//     ComputeFrequencies → BuildTree → DeriveCodeTable → Encoder / Decoder
//
// Codec bundles the whole pipeline, and SavedTable is the record used to
// persist a code table so that it can be loaded again without rebuilding the
// tree.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffcodec
