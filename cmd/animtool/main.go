// Command animtool validates, normalizes and exports keyframe
// animation files.
//
//	animtool -in wave.json                     validate and print normalized JSON
//	animtool -in wave.json -out wave.norm.json normalize into a file
//	animtool -in wave.json -pkg poses -var Wave -out wave.go
//	                                           export as Go source
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/skinview/pkg/keyframe"
)

var (
	flagIn    = flag.String("in", "", "Input keyframe JSON file")
	flagOut   = flag.String("out", "", "Output file (stdout when empty)")
	flagCheck = flag.Bool("check", false, "Validate only, no output")
	flagPkg   = flag.String("pkg", "", "Export Go source with this package name")
	flagVar   = flag.String("var", "", "Variable name for the exported tracks")
)

func main() {
	flag.Parse()

	if *flagIn == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*flagIn)
	if err != nil {
		fatal(err)
	}

	a, err := keyframe.FromJSON(data)
	if err != nil {
		fatal(err)
	}

	if *flagCheck {
		fmt.Printf("%s: ok, %d tracks, %.3gs\n", *flagIn, len(a.Tracks()), a.Length())
		return
	}

	var out []byte
	if *flagPkg != "" || *flagVar != "" {
		out, err = a.ExportSource(*flagPkg, *flagVar)
	} else {
		out, err = a.ToJSON()
		out = append(out, '\n')
	}
	if err != nil {
		fatal(err)
	}

	if *flagOut == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*flagOut, out, 0644); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "animtool:", err)
	os.Exit(1)
}
