// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Davidwarchy/robolog/lib/cli"
	"github.com/Davidwarchy/robolog/lib/codec"
	"github.com/Davidwarchy/robolog/lib/samplelog"
)

func rawCommand() *cli.Command {
	return &cli.Command{
		Name:    "raw",
		Summary: "Dump a container's CBOR sections in diagnostic notation",
		Description: `Print a container's prelude fields, then its header and body as
RFC 8949 Extended Diagnostic Notation (EDN).

Unlike "records", the body is not decoded into typed samples, so this
works on containers written by a newer robolog whose record schema
this build does not know. The body digest is still verified.`,
		Usage: "robolog inspect raw <container>",
		Examples: []cli.Example{
			{Command: "robolog inspect raw runs/2026-01-02-150405/distance.rlog"},
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("raw takes exactly one container file")
			}
			return runRaw(args[0], os.Stdout)
		},
	}
}

// runRaw dumps the container's sections without decoding its records.
func runRaw(path string, w io.Writer) error {
	info, headerBytes, body, err := samplelog.ReadSections(path)
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	fmt.Fprintf(w, "prelude: compression %s, header %d B, body %d B stored, %d B raw\n",
		info.Compression, len(headerBytes), info.StoredSize, info.RawSize)
	fmt.Fprintf(w, "digest: %s\n", samplelog.FormatDigest(info.Digest))
	if err := diagSection(w, "header", headerBytes); err != nil {
		return err
	}
	return diagSection(w, "body", body)
}

func diagSection(w io.Writer, name string, data []byte) error {
	notation, err := codec.Diagnose(data)
	if err != nil {
		return fmt.Errorf("diagnose %s: %w", name, err)
	}
	fmt.Fprintf(w, "%s: %s\n", name, notation)
	return nil
}
