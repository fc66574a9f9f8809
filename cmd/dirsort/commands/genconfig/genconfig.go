package genconfig

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/dirsort/pkg/config"
	"github.com/arthur-debert/dirsort/pkg/errors"
	"github.com/arthur-debert/dirsort/pkg/logging"
	"github.com/spf13/cobra"
)

// Loader returns the effective configuration for the invoking command
type Loader func(cmd *cobra.Command) (*config.Config, error)

// NewCommand creates the gen-config command. The root command supplies
// load so that its flags take part in the result.
func NewCommand(load Loader) *cobra.Command {
	var (
		format   string
		write    string
		template bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := render(cmd, load, format, template)
			if err != nil {
				return err
			}
			if write == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			return writeFile(write, content)
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagFormat)
	cmd.Flags().StringVarP(&write, "write", "w", "", MsgFlagWrite)
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)

	return cmd
}

func render(cmd *cobra.Command, load Loader, format string, template bool) (string, error) {
	if template {
		if f := strings.ToLower(format); f != "toml" && f != "" {
			return "", errors.New(errors.ErrInvalidInput, MsgErrTemplateNotToml)
		}
		return config.GenerateConfigContent(), nil
	}

	cfg, err := load(cmd)
	if err != nil {
		return "", err
	}
	data, err := cfg.Marshal(format)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeFile(path, content string) error {
	logger := logging.GetLogger("cmd.genconfig")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return errors.Newf(errors.ErrInvalidInput, MsgErrFileExists, path).WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrInternal, "cannot create %s", path)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, errors.ErrInternal, "cannot write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot write %s", path)
	}

	logger.Info().Str("path", path).Msg(MsgWroteConfig)
	return nil
}
