package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	xspf "github.com/dem214/xspf-lib"
	"github.com/dem214/xspf-lib/internal/cliutil"
)

type cmdopts struct {
	Canonical bool `long:"canonical"`
	Version   bool `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("xspf-lint: using xspf-lib version %s\n", xspf.Version)
}

func showUsage() {
	fmt.Printf(`Usage : xspf-lint [options] XSPFfiles ...
	Parse the XSPF playlists and report validation errors
	--canonical : print the canonical serialization of each valid playlist
	--version   : display the version of the XSPF library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	inputCh := make(chan io.Reader)
	// buffered so a failed os.Open does not block the producer before it
	// can close inputCh
	errCh := make(chan error, 1)
	switch {
	case len(args) > 0: // filename present
		go func() {
			defer close(inputCh)
			for _, f := range args {
				fh, err := os.Open(f)
				if err != nil {
					errCh <- err
					return
				}
				inputCh <- fh
			}
		}()
	case !cliutil.IsTty(os.Stdin):
		go func() {
			defer close(inputCh)
			inputCh <- os.Stdin
		}()
	default:
		showUsage()
		return 1
	}

	for in := range inputCh {
		playlist, err := xspf.Parse(in)
		if c, ok := in.(io.Closer); ok && in != os.Stdin {
			c.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}

		if opts.Canonical {
			if err := playlist.Write(os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err)
				return 1
			}
			fmt.Println()
		}
	}

	select {
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "%s", err)
		return 1
	default:
	}

	return 0
}
