// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/zmij/lzma1

/*
lzma1c compresses stdin to stdout as a raw LZMA1 stream (the classic 13-byte
header followed by a range-coded payload; no .7z/.xz container).

Usage:

	lzma1c [flags] < input > output.lzma

Flags:

	-level int
	    Preset 0-9, trading speed for ratio (default 5).
	-fb int
	    Fast-bytes override; 0 keeps the preset's value.
	-dict int
	    Dictionary size in bytes override; 0 keeps the preset's value.
	-hc
	    Use the hash-chain match finder instead of the binary-tree one.
	-fast
	    Use the greedy parser instead of the optimal one.
	-endmark
	    Write the end-of-stream marker and an "unknown size" header
	    instead of the input's size. Never required: lzma1c reads all of
	    stdin before encoding, so the size is always known.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/zmij/lzma1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lzma1c: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	level := flag.Int("level", 5, "preset level 0-9")
	fb := flag.Int("fb", 0, "fast-bytes override (0 = preset default)")
	dict := flag.Int("dict", 0, "dictionary size override in bytes (0 = preset default)")
	hc := flag.Bool("hc", false, "use the hash-chain match finder")
	fast := flag.Bool("fast", false, "use the greedy parser")
	endMark := flag.Bool("endmark", false, "write the end-of-stream marker")
	flag.Parse()

	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	opts := lzma1.NewOptions(*level)
	if *fb > 0 {
		opts.FB = *fb
	}
	if *dict > 0 {
		opts.DictSize = uint32(*dict)
	}
	if *hc {
		opts.Mode = lzma1.ModeHC
	}
	if *fast {
		opts.Algo = lzma1.AlgoFast
	}
	opts.WriteEndMark = *endMark
	opts.UncompressedSize = uint64(len(src))

	enc, err := lzma1.NewEncoder(opts)
	if err != nil {
		return fmt.Errorf("new encoder: %w", err)
	}

	out := make([]byte, 0, len(src)/2+64)
	buf := make([]byte, 64*1024)
	for {
		n, err := enc.Encode(buf, src, true)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		out = append(out, buf[:n]...)
		src = nil
		if n == 0 {
			break
		}
	}

	if _, err := os.Stdout.Write(out); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
