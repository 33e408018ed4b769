// Command sdcdump is a small inspection tool for SDC container files. It
// is a thin presentation layer over the sdc package — it holds no parsing
// logic of its own beyond flag decoding.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/ilius/paragon-slovoed-ce/sdc"
	"github.com/ilius/paragon-slovoed-ce/sdc/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut *os.File) int {
	if len(args) < 1 {
		printUsage(errOut)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "info":
		return cmdInfo(out, errOut, rest)
	case "verify":
		return cmdVerify(out, errOut, rest)
	case "list":
		return cmdList(out, errOut, rest)
	case "get":
		return cmdGet(out, errOut, rest)
	case "props":
		return cmdProps(out, errOut, rest)
	case "-h", "--help", "help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "sdcdump: unknown command %q\n", cmd)
		printUsage(errOut)
		return 2
	}
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, `usage: sdcdump <command> [flags]

commands:
  info <file>                          print header summary
  verify <file>                        run CheckData and report the result
  list <file>                          list the resource table
  get <file> --type T --index I [--out path]
                                        fetch one resource's bytes
  props <file>                         list base properties`)
}

func openReader(path string, errOut *os.File) (*sdc.Reader, *sdc.OSFile, int) {
	f, err := sdc.OpenOSFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "sdcdump: %s: %v\n", path, err)
		return nil, nil, 1
	}
	r := sdc.NewReader()
	if serr := r.Open(f); serr != sdc.ErrOK {
		fmt.Fprintf(errOut, "sdcdump: %s: %v\n", path, serr)
		f.Close()
		return nil, nil, 1
	}
	return r, f, 0
}

func cmdInfo(out, errOut *os.File, args []string) int {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "sdcdump info: expected exactly one file argument")
		return 2
	}

	r, f, code := openReader(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	defer f.Close()
	defer r.Close()

	fmt.Fprintf(out, "database_type:        %d\n", r.DatabaseType())
	fmt.Fprintf(out, "is_in_app:            %d\n", r.IsInApp())
	fmt.Fprintf(out, "number_of_resources:  %d\n", r.NumberOfResources())
	fmt.Fprintf(out, "number_of_properties: %d\n", r.NumberOfProperties())
	return 0
}

func cmdVerify(out, errOut *os.File, args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "sdcdump verify: expected exactly one file argument")
		return 2
	}

	r, f, code := openReader(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	defer f.Close()
	defer r.Close()

	serr := r.CheckData()
	fmt.Fprintln(out, serr.Error())
	if serr != sdc.SDCOK {
		logger.Warn("check_data failed: %v", serr)
		return 1
	}
	return 0
}

func cmdList(out, errOut *os.File, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "sdcdump list: expected exactly one file argument")
		return 2
	}

	r, f, code := openReader(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	defer f.Close()
	defer r.Close()

	for _, p := range r.ResourceTable() {
		fmt.Fprintf(out, "type=%d index=%d size=%d shift=%d compressed=%v\n",
			p.Type, p.Index, p.OnDiskSize(), p.Shift, p.Compressed())
	}
	return 0
}

func cmdGet(out, errOut *os.File, args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	typ := fs.Uint32("type", 0, "resource type")
	index := fs.Uint32("index", 0, "resource index")
	outPath := fs.String("out", "", "write resource bytes here instead of stdout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "sdcdump get: expected exactly one file argument")
		return 2
	}

	r, f, code := openReader(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	defer f.Close()
	defer r.Close()

	h := r.GetResource(*typ, *index)
	if !h.OK() {
		fmt.Fprintf(errOut, "sdcdump get: %v\n", h.Err)
		return 1
	}
	defer h.Release()

	if *outPath != "" {
		if err := os.WriteFile(*outPath, h.Res.Data(), 0o644); err != nil {
			fmt.Fprintf(errOut, "sdcdump get: %v\n", err)
			return 1
		}
		return 0
	}
	out.Write(h.Res.Data())
	return 0
}

func cmdProps(out, errOut *os.File, args []string) int {
	fs := flag.NewFlagSet("props", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "sdcdump props: expected exactly one file argument")
		return 2
	}

	r, f, code := openReader(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	defer f.Close()
	defer r.Close()

	n := r.NumberOfProperties()
	for i := uint32(0); i < n; i++ {
		name, value, serr := r.PropertyByIndex(i)
		if serr != sdc.SDCOK {
			fmt.Fprintf(errOut, "sdcdump props: %v\n", serr)
			return 1
		}
		fmt.Fprintf(out, "%s=%s\n", name, value)
	}
	return 0
}
