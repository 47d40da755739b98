package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"pinion/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	cfgFile = flag.String("config", "", "JSON config file with device/baud defaults")
)

// fileConfig is the optional on-disk configuration. Flags given on the
// command line win over the file.
type fileConfig struct {
	Device string `json:"device"`
	Baud   int    `json:"baud"`
}

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	if err := applyConfigFile(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Pinion Console")
	fmt.Println("==============")

	fmt.Printf("Opening %s...\n", cfg.Device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()
	port.Flush()

	fmt.Println("Connected. Lines are sent to the board verbatim.")
	fmt.Println("Type 'help' for local commands, 'quit' to exit.")

	go printResponses(port)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()
			continue
		}

		if _, err := port.Write([]byte(line + "\n")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: write failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// applyConfigFile overlays settings from -config, keeping any value the
// user set explicitly on the command line.
func applyConfigFile(cfg *serial.Config) error {
	if *cfgFile == "" {
		return nil
	}

	data, err := os.ReadFile(*cfgFile)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", *cfgFile, err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if fc.Device != "" && !set["device"] {
		cfg.Device = fc.Device
	}
	if fc.Baud > 0 && !set["baud"] {
		cfg.Baud = fc.Baud
	}
	return nil
}

// printResponses copies board output to stdout a line at a time. The
// port polls on a read timeout, so a zero-byte EOF is just an idle tick.
func printResponses(port serial.Port) {
	buf := make([]byte, 256)
	var line []byte
	for {
		n, err := port.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				fmt.Println(strings.TrimRight(string(line), "\r"))
				line = line[:0]
			} else {
				line = append(line, b)
			}
		}
		if err != nil && err != io.EOF {
			return
		}
	}
}

func printHelp() {
	fmt.Println("\nLocal commands:")
	fmt.Println("  help           - Show this help message")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println("\nAnything else is sent to the board, e.g.:")
	fmt.Println("  led = GPIO.new PB9 GPIO.OUT")
	fmt.Println("  led.write 1")
	fmt.Println("  adc = ADC.new PB10")
	fmt.Println("  adc.read_voltage")
	fmt.Println()
}
