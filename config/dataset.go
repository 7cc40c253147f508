// Copyright 2025 setops Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Pair is one generated (A, B) input to a 2-set kernel, both sorted
// ascending, as decoded from a dataset file.
type Pair struct {
	A []int32
	B []int32
}

// WritePair encodes a Pair to w in the harness's self-describing on-disk
// format (spec.md §6.5): a varint element count followed by that many
// little-endian int32 values, repeated for A then B. The original Rust
// harness used bincode; no CBOR/bincode/msgpack library exists anywhere in
// the retrieved example pack, so this is a small bespoke encoding directly
// on encoding/binary rather than a borrowed serialization library (see
// DESIGN.md).
func WritePair(w io.Writer, p Pair) error {
	bw := bufio.NewWriter(w)
	if err := writeSeq(bw, p.A); err != nil {
		return fmt.Errorf("config: writing A: %w", err)
	}
	if err := writeSeq(bw, p.B); err != nil {
		return fmt.Errorf("config: writing B: %w", err)
	}
	return bw.Flush()
}

func writeSeq(w *bufio.Writer, seq []int32) error {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(seq)))
	if _, err := w.Write(lenBuf[:n]); err != nil {
		return err
	}
	var elemBuf [4]byte
	for _, x := range seq {
		binary.LittleEndian.PutUint32(elemBuf[:], uint32(x))
		if _, err := w.Write(elemBuf[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadPair decodes a Pair previously written by WritePair.
func ReadPair(r io.Reader) (Pair, error) {
	br := bufio.NewReader(r)
	a, err := readSeq(br)
	if err != nil {
		return Pair{}, fmt.Errorf("config: reading A: %w", err)
	}
	b, err := readSeq(br)
	if err != nil {
		return Pair{}, fmt.Errorf("config: reading B: %w", err)
	}
	return Pair{A: a, B: b}, nil
}

func readSeq(r *bufio.Reader) ([]int32, error) {
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	seq := make([]int32, count)
	var elemBuf [4]byte
	for i := range seq {
		if _, err := io.ReadFull(r, elemBuf[:]); err != nil {
			return nil, err
		}
		seq[i] = int32(binary.LittleEndian.Uint32(elemBuf[:]))
	}
	return seq, nil
}

// LoadPairFile opens path and decodes a single Pair from it — one file per
// repetition under <datasets>/2set/<name>/<x>/, per spec.md §6.5.
func LoadPairFile(path string) (Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pair{}, fmt.Errorf("config: opening %q: %w", path, err)
	}
	defer f.Close()
	return ReadPair(f)
}

// SavePairFile writes p to path, creating or truncating it.
func SavePairFile(path string, p Pair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %q: %w", path, err)
	}
	defer f.Close()
	return WritePair(f, p)
}

// XPoints lists the x-value subdirectories under
// <datasetsDir>/2set/<name>/, sorted ascending, by parsing each entry name
// as a float64. Non-numeric entries are skipped.
func XPoints(datasetsDir, name string) ([]float64, error) {
	dir := filepath.Join(datasetsDir, "2set", name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("config: listing %q: %w", dir, err)
	}
	var xs []float64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		x, err := strconv.ParseFloat(e.Name(), 64)
		if err != nil {
			continue
		}
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	return xs, nil
}

// PairFiles lists the repetition files under
// <datasetsDir>/2set/<name>/<x>/, in directory order.
func PairFiles(datasetsDir, name string, x float64) ([]string, error) {
	dir := filepath.Join(datasetsDir, "2set", name, formatX(x))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("config: listing %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func formatX(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
