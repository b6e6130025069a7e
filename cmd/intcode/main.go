// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/io"
	"github.com/ezrec/intcode/network"
)

// options are the run settings not carried by the configuration file.
type options struct {
	save    bool
	disasm  bool
	input   string
	output  string
	dump    string
	restore string
	nodes   int
}

func main() {
	var confPath string
	var program string
	var compile string
	var opts options

	conf := config.Default()

	flag.StringVar(&confPath, "f", "", "intcode.toml configuration")
	flag.StringVar(&program, "p", "", "Program file")
	flag.StringVar(&compile, "c", "", ".ica file to assemble")
	flag.BoolVar(&opts.save, "s", false, "Print the program image, do not execute")
	flag.BoolVar(&opts.disasm, "d", false, "Disassemble the program, do not execute")
	flag.IntVar(&conf.Width, "w", conf.Width, "Word width (32 or 64)")
	flag.BoolVar(&conf.Ascii, "a", conf.Ascii, "ASCII tape I/O")
	flag.StringVar(&opts.input, "i", "-", "Tape input")
	flag.StringVar(&opts.output, "o", "-", "Tape output")
	flag.IntVar(&conf.MaxTicks, "n", conf.MaxTicks, "Maximum instructions to execute")
	flag.BoolVar(&conf.Verbose, "v", conf.Verbose, "Verbose mode")
	flag.StringVar(&opts.dump, "dump", "", "Write the final machine state to a file")
	flag.StringVar(&opts.restore, "restore", "", "Resume from a machine state file")
	flag.IntVar(&opts.nodes, "net", 0, "Run a network of this many nodes")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(confPath) != 0 {
		loaded, err := config.Load(confPath)
		if err != nil {
			log.Fatal(err)
		}
		// Flags given on the command line win.
		flag.Visit(func(fl *flag.Flag) {
			switch fl.Name {
			case "w":
				loaded.Width = conf.Width
			case "a":
				loaded.Ascii = conf.Ascii
			case "n":
				loaded.MaxTicks = conf.MaxTicks
			case "v":
				loaded.Verbose = conf.Verbose
			}
		})
		conf = loaded
		if len(program) == 0 && len(compile) == 0 {
			if strings.HasSuffix(conf.Program, ".ica") {
				compile = conf.ProgramPath()
			} else {
				program = conf.ProgramPath()
			}
		}
	}

	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}

	var text string
	var prog *intcode.Program

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &intcode.Assembler{Verbose: conf.Verbose}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(program) != 0:
		data, err := os.ReadFile(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		text = string(data)
	default:
		log.Fatalf("%v: no program given", os.Args[0])
	}

	var err error
	if conf.Width == 32 {
		err = run[int32](conf, &opts, text, prog)
	} else {
		err = run[int64](conf, &opts, text, prog)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// run loads and executes the program with words of type W.
func run[W intcode.Word](conf *config.Config, opts *options, text string, prog *intcode.Program) (err error) {
	var m *intcode.Machine[W]
	if prog != nil {
		m, err = intcode.Load[W](prog)
	} else {
		m, err = intcode.New[W](text)
	}
	if err != nil {
		return
	}

	image := m.Memory.Dump()

	if opts.save {
		fmt.Println(intcode.Format(image))
		return
	}

	if opts.disasm {
		for ip, line := range intcode.Disassemble(image) {
			fmt.Printf("%-24s ; %06d\n", line, ip)
		}
		return
	}

	if opts.nodes > 0 {
		return runNetwork(conf, opts, image)
	}

	patches, err := conf.Patches()
	if err != nil {
		return
	}
	for _, patch := range patches {
		m.Write(patch.Addr, W(patch.Value))
	}

	if len(opts.restore) != 0 {
		var data []byte
		data, err = os.ReadFile(opts.restore)
		if err != nil {
			return
		}
		var state intcode.State[W]
		state, err = intcode.UnmarshalState[W](data)
		if err != nil {
			return
		}
		m.Restore(state)
	}

	emu := emulator.NewEmulator(m)
	emu.Program = prog
	emu.Verbose = conf.Verbose
	emu.MaxTicks = conf.MaxTicks

	input := &io.Tape{Ascii: conf.Ascii, Preload: conf.Input}
	if opts.input == "-" {
		input.Input = os.Stdin
	} else {
		inf, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer inf.Close()
		input.Input = inf
	}
	emu.Input = input

	output := &io.Tape{Ascii: conf.Ascii}
	if opts.output == "-" {
		output.Output = os.Stdout
	} else {
		ouf, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer ouf.Close()
		output.Output = ouf
	}
	emu.Output = output

	err = emu.Run()

	if len(opts.dump) != 0 {
		data, dumpErr := intcode.MarshalState(m.Snapshot())
		if dumpErr == nil {
			dumpErr = os.WriteFile(opts.dump, data, 0o644)
		}
		if err == nil {
			err = dumpErr
		}
	}

	return
}

// runNetwork prints the first NAT packet and the first repeated NAT wake
// of a network running image.
func runNetwork[W intcode.Word](conf *config.Config, opts *options, image []W) (err error) {
	nw, err := network.NewFromImage(image, opts.nodes)
	if err != nil {
		return
	}
	nw.Verbose = conf.Verbose
	// The instruction limit bounds scheduling rounds instead.
	nw.MaxRounds = conf.MaxTicks

	y, err := nw.FirstNat()
	if err != nil {
		return
	}
	fmt.Printf("nat: %d\n", int64(y))

	nw.Reset()
	y, err = nw.FirstRepeatedWake()
	if err != nil {
		return
	}
	fmt.Printf("wake: %d\n", int64(y))

	return
}
