/*
Package bmpfilter reads and writes uncompressed 24-bit BMP images and applies
a fixed set of filters to them.

Images are decoded into a float raster (one RGB triple in [0,1] per pixel,
row-major, origin top-left). Filters are pure: each one returns a new Image and
leaves its input untouched, so they compose into a Pipeline where every stage
consumes the previous output.

The bitmap layout is a 14-byte file header, a 40-byte info header and pixel
rows stored bottom-up in B,G,R order, each padded with zeros to 4 bytes.
Channels are written with a truncating cast and no clamping.

Besides plain bitmaps the package can wrap the bitmap stream in an LZ4 frame
and export the raster as a DDS texture.
*/
package bmpfilter
