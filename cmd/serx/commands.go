package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/hengadev/serx"
	"github.com/hengadev/serx/providers/sqlite"
	"github.com/hengadev/serx/store"
)

func initCommand(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	configPath := fs.String("config", serx.DefaultConfigFile, "Path to configuration file")
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*configPath); err == nil {
			return fmt.Errorf("configuration file %s already exists, use -force to overwrite", *configPath)
		}
	}

	fmt.Fprintf(out, "Creating configuration file at %s...\n", *configPath)
	if err := serx.SaveConfigFile(serx.DefaultConfig(), *configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintln(out, "Configuration file created!")
	return nil
}

func validateCommand(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	configPath := fs.String("config", serx.DefaultConfigFile, "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(out, "Validating configuration at %s...\n", *configPath)
	cfg, err := serx.LoadConfigFile(*configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Configuration is valid (codec: %s, tag: %s)\n", cfg.Codec, cfg.TagName)
	return nil
}

func getCommand(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	dbPath := fs.String("db", "", "Path to the SQLite document store")
	collection := fs.String("collection", "", "Collection name")
	id := fs.String("id", "", "Document id")
	configPath := fs.String("config", "", "Path to configuration file")
	envPath := fs.String("env", "", "Path to a .env file")
	verbose := fs.Bool("v", false, "Log operations to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" || *collection == "" || *id == "" {
		return errors.New("-db, -collection and -id are required")
	}

	cfg, err := loadConfig(*configPath, *envPath)
	if err != nil {
		return err
	}

	var opts []serx.Option
	if *verbose {
		cfg.LogLevel = "debug"
		logger, err := serx.NewLogger(cfg, os.Stderr, "cli")
		if err != nil {
			return err
		}
		opts = append(opts, serx.WithObservability(serx.NewLoggingHook(logger)))
	}
	s, err := serx.New(cfg, opts...)
	if err != nil {
		return err
	}

	st, err := openStore(*dbPath, s)
	if err != nil {
		return err
	}
	defer st.Close()

	doc, err := st.LoadDict(context.Background(), *collection, *id)
	if err != nil {
		return err
	}
	data, err := s.Codec().Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func listCommand(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	dbPath := fs.String("db", "", "Path to the SQLite document store")
	collection := fs.String("collection", "", "Collection name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dbPath == "" || *collection == "" {
		return errors.New("-db and -collection are required")
	}

	st, err := openStore(*dbPath, nil)
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := st.List(context.Background(), *collection)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return nil
}

func versionCommand(out io.Writer) {
	fmt.Fprintln(out, serx.VersionInfo())
	fmt.Fprintln(out, "Graph serializer for persistent records")
	fmt.Fprintln(out, "")
	fmt.Fprintf(out, "Supported codecs: %v\n", serx.CodecNames())
	fmt.Fprintln(out, "Supported stores: sqlite, s3")
}

// loadConfig reads the YAML file when given, otherwise the environment with an
// optional dotenv file layered underneath.
func loadConfig(configPath, envPath string) (serx.Config, error) {
	if configPath != "" {
		return serx.LoadConfigFile(configPath)
	}
	if envPath != "" {
		return serx.LoadConfigFromEnvFile(envPath)
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return serx.Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}
	return serx.LoadConfigFromEnvironment()
}

func openStore(dbPath string, s *serx.Serializer) (*store.Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database not found: %s", dbPath)
	}
	backend, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	st, err := store.New(backend, s)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return st, nil
}
