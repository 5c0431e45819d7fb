// phpserial - serialized PHP array recovery tool
//
// Usage:
//
//	phpserial repair [-json] [-v] [-declared] [-normalize] [file]  Recover truncated or corrupted array
//	phpserial decode [-strict] [-v] [-normalize] [file]           Decode serialized value as JSON
//	phpserial encode [file]                                       Encode JSON object as serialized array
//	phpserial version                                             Print version info
//
// If no file is given, or file is "-", reads from stdin.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/viant/phpserial"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	logger := log.New(stderr, "", 0)
	cmd, args := args[0], args[1:]
	var err error
	switch cmd {
	case "repair":
		err = repair(args, stdin, stdout, logger)
	case "decode":
		err = decode(args, stdin, stdout, logger)
	case "encode":
		err = encode(args, stdin, stdout, logger)
	case "version":
		_, err = fmt.Fprintf(stdout, "phpserial %s\n", version)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		logger.Printf("unknown command: %s", cmd)
		usage(stderr)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: phpserial <repair|decode|encode|version> [options] [file]")
}

type flags struct {
	set       *flag.FlagSet
	json      bool
	verbose   bool
	declared  bool
	normalize bool
	strict    bool
}

func newFlags(name string, logger *log.Logger) *flags {
	ret := &flags{set: flag.NewFlagSet(name, flag.ContinueOnError)}
	ret.set.SetOutput(logger.Writer())
	ret.set.BoolVar(&ret.verbose, "v", false, "log recovery outcome")
	ret.set.BoolVar(&ret.normalize, "normalize", false, "convert canonical decimal string keys to integer keys")
	return ret
}

func (f *flags) options(logger *log.Logger) []phpserial.Option {
	var ret []phpserial.Option
	if f.declared {
		ret = append(ret, phpserial.WithStringPolicy(phpserial.PreferDeclaredLength))
	}
	if f.normalize {
		ret = append(ret, phpserial.WithKeyPolicy(phpserial.NormalizeKeys))
	}
	if f.strict {
		ret = append(ret, phpserial.WithMalformedPolicy(phpserial.FailFast))
	}
	if f.verbose {
		ret = append(ret, phpserial.WithRecoverySink(func(recovery phpserial.Recovery) {
			logger.Printf("recovered %d entries, %s at offset %d, %d bytes remaining",
				recovery.Entries, recovery.Cause, recovery.Offset, recovery.Remaining)
		}))
	}
	return ret
}

func repair(args []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	f := newFlags("repair", logger)
	f.set.BoolVar(&f.json, "json", false, "write recovered array as JSON")
	f.set.BoolVar(&f.declared, "declared", false, "prefer declared string lengths")
	if err := f.set.Parse(args); err != nil {
		return err
	}
	data, err := readInput(f.set.Args(), stdin)
	if err != nil {
		return err
	}
	recovered := phpserial.RepairBytes(bytes.TrimSpace(data), f.options(logger)...)
	var output []byte
	if f.json {
		if output, err = recovered.MarshalJSON(); err != nil {
			return err
		}
	} else {
		output = recovered.Serialize()
	}
	return writeLine(stdout, output)
}

func decode(args []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	f := newFlags("decode", logger)
	f.set.BoolVar(&f.strict, "strict", false, "fail on malformed input instead of recovering")
	if err := f.set.Parse(args); err != nil {
		return err
	}
	data, err := readInput(f.set.Args(), stdin)
	if err != nil {
		return err
	}
	var value phpserial.Value
	if err = phpserial.Unmarshal(bytes.TrimSpace(data), &value, f.options(logger)...); err != nil {
		return err
	}
	output, err := value.MarshalJSON()
	if err != nil {
		return err
	}
	return writeLine(stdout, output)
}

func encode(args []string, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	f := flag.NewFlagSet("encode", flag.ContinueOnError)
	f.SetOutput(logger.Writer())
	if err := f.Parse(args); err != nil {
		return err
	}
	data, err := readInput(f.Args(), stdin)
	if err != nil {
		return err
	}
	m, err := phpserial.FromJSON(data)
	if err != nil {
		return fmt.Errorf("invalid JSON object: %w", err)
	}
	return writeLine(stdout, m.Serialize())
}

func readInput(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("expected at most one file, got %d", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}

func writeLine(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
