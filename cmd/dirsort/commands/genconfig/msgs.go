package genconfig

// Message constants
const (
	MsgShort = "Print the effective configuration"
	MsgLong  = "Output the configuration dirsort would run with, after layering the defaults,\n" +
		"the --config file, DIRSORT_* environment variables and command-line flags.\n\n" +
		"With --template, output the commented default configuration file instead.\n" +
		"With -w, write to the given file instead of stdout. Existing files are never overwritten."
	MsgExample = `  dirsort gen-config                              # TOML to stdout
  dirsort gen-config --format yaml -r .txt=docs   # YAML, including the given rule
  dirsort gen-config --template -w dirsort.toml   # Start a new config file`

	MsgFlagFormat   = "Output format: toml or yaml"
	MsgFlagWrite    = "Write the configuration to this file instead of stdout"
	MsgFlagTemplate = "Output the commented default configuration (TOML only)"

	MsgErrFileExists      = "refusing to overwrite %s"
	MsgErrTemplateNotToml = "--template only supports the toml format"
	MsgWroteConfig        = "Wrote configuration"
)
