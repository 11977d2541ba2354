package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fastawc/counter"
	"fastawc/version"
)

type Config struct {
	Lines         bool
	Words         bool
	Bytes         bool
	Chars         bool
	MaxLineLength bool

	FilesFrom      string
	Engine         string // auto, scalar, or vector
	ChunkSize      int
	ReadMode       string // auto, stream, or mmap
	MmapMinSize    int64
	MaxMBPerSecond int
	Progress       bool
	Stats          bool
	LogLevel       string

	Paths []string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Engine:      "auto",
		ChunkSize:   1 << 20,
		ReadMode:    "auto",
		MmapMinSize: 128 * 1024,
		LogLevel:    "info",
	}

	flag.BoolVar(&cfg.Lines, "l", false, "Print the newline counts.")
	flag.BoolVar(&cfg.Lines, "lines", false, "Print the newline counts.")
	flag.BoolVar(&cfg.Words, "w", false, "Print the word counts (ASCII whitespace separated).")
	flag.BoolVar(&cfg.Words, "words", false, "Print the word counts (ASCII whitespace separated).")
	flag.BoolVar(&cfg.Bytes, "c", false, "Print the byte counts.")
	flag.BoolVar(&cfg.Bytes, "bytes", false, "Print the byte counts.")
	flag.BoolVar(&cfg.Chars, "m", false, "Print the character counts (UTF-8 code points).")
	flag.BoolVar(&cfg.Chars, "chars", false, "Print the character counts (UTF-8 code points).")
	flag.BoolVar(&cfg.MaxLineLength, "L", false, "Print the maximum line length (bytes, or code points with --chars).")
	flag.BoolVar(&cfg.MaxLineLength, "max-line-length", false, "Print the maximum line length (bytes, or code points with --chars).")
	flag.StringVar(&cfg.FilesFrom, "files0-from", "", "Read input names from FILE, NUL-separated; '-' for standard input (default: none).")
	flag.StringVar(&cfg.Engine, "engine", cfg.Engine, "Counting engine: auto, scalar, or vector (default: auto).")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, fmt.Sprintf("Read chunk size in bytes (default: %d).", cfg.ChunkSize))
	flag.StringVar(&cfg.ReadMode, "read-mode", cfg.ReadMode, "File read mode: auto, stream, or mmap (default: auto).")
	flag.Int64Var(&cfg.MmapMinSize, "mmap-min-size", cfg.MmapMinSize, fmt.Sprintf("Minimum file size in bytes for the mmap read path (default: %d).", cfg.MmapMinSize))
	flag.IntVar(&cfg.MaxMBPerSecond, "max-mbps", cfg.MaxMBPerSecond, "Maximum read throughput in MiB per second (default: 0/off).")
	flag.BoolVar(&cfg.Progress, "progress", false, "Show a progress bar on stderr when scanning multiple inputs.")
	flag.BoolVar(&cfg.Stats, "stats", false, "Print run statistics to stderr when done.")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, fmt.Sprintf("Log level: debug, info, warn, error, fatal, or panic (default: %s).", cfg.LogLevel))
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = displayHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("fastawc version %s\n", version.Version)
		os.Exit(0)
	}

	cfg.Paths = flag.Args()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func displayHelp() {
	fmt.Println("fastawc - fast wc-style text statistics")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  fastawc [options] [FILE]...")
	fmt.Println()
	fmt.Println("With no FILE, or when FILE is -, read standard input.")
	fmt.Println("By default, fastawc prints line, word, and byte counts.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  fastawc -l -w file.txt")
	fmt.Println("  fastawc --chars --max-line-length notes.md")
	fmt.Println("  find . -name '*.go' -print0 | fastawc --files0-from=-")
}

func (cfg *Config) validate() error {
	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	if cfg.Engine == "" {
		cfg.Engine = "auto"
	}
	cfg.ReadMode = strings.ToLower(strings.TrimSpace(cfg.ReadMode))
	if cfg.ReadMode == "" {
		cfg.ReadMode = "auto"
	}

	switch cfg.Engine {
	case "auto", "scalar":
	case "vector":
		if !counter.VectorAvailable() {
			return fmt.Errorf("vector engine is not supported on this CPU")
		}
	default:
		return fmt.Errorf("invalid engine: %s (must be auto, scalar, or vector)", cfg.Engine)
	}
	switch cfg.ReadMode {
	case "auto", "stream", "mmap":
	default:
		return fmt.Errorf("invalid read mode: %s (must be auto, stream, or mmap)", cfg.ReadMode)
	}
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive")
	}
	if cfg.MmapMinSize < 0 {
		return fmt.Errorf("mmap-min-size must be zero or positive")
	}
	if cfg.MaxMBPerSecond < 0 {
		return fmt.Errorf("max-mbps must be zero or positive")
	}
	return nil
}

// Selection maps the display flags to the engine's counter selection,
// applying the lines/words/bytes default when no flag was given.
func (cfg *Config) Selection() counter.Selection {
	return counter.Selection{
		Lines:         cfg.Lines,
		Words:         cfg.Words,
		Bytes:         cfg.Bytes,
		Chars:         cfg.Chars,
		MaxLineLength: cfg.MaxLineLength,
	}.ApplyDefault()
}

// EngineMode resolves the engine choice; auto picks vector when the CPU
// supports it.
func (cfg *Config) EngineMode() counter.Mode {
	switch cfg.Engine {
	case "scalar":
		return counter.ModeScalar
	case "vector":
		return counter.ModeVector
	default:
		if counter.VectorAvailable() {
			return counter.ModeVector
		}
		return counter.ModeScalar
	}
}

// MaxBytesPerSecond converts the MiB/s cap to bytes for the reader.
func (cfg *Config) MaxBytesPerSecond() int {
	return cfg.MaxMBPerSecond * (1 << 20)
}
