// Command csemver is a thin front end over the version engine: it parses
// CSemVer versions, enumerates direct successors, classifies package
// quality and evaluates npm or NuGet range expressions.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petrarca/csemver/bound"
	"github.com/petrarca/csemver/csemver"
	"github.com/petrarca/csemver/internal/version"
	"github.com/petrarca/csemver/semver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "csemver",
		Short:         "CSemVer version and range toolbox",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newParseCmd(), newNextCmd(), newQualityCmd(), newSatisfiesCmd(), newVersionCmd())
	return root
}

// versionInfo is the serializable view of a parsed version.
type versionInfo struct {
	Normalized  string `json:"normalized" yaml:"normalized"`
	ShortForm   string `json:"shortForm" yaml:"shortForm"`
	LongForm    string `json:"longForm" yaml:"longForm"`
	Ordered     int64  `json:"orderedVersion" yaml:"orderedVersion"`
	FileVersion string `json:"fileVersion" yaml:"fileVersion"`
	Quality     string `json:"quality" yaml:"quality"`
}

func newParseCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse VERSION",
		Short: "Parse a CSemVer version and print its canonical renderings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := csemver.Parse(args[0])
			if err != nil {
				return err
			}
			info := versionInfo{
				Normalized:  v.NormalizedText(),
				ShortForm:   v.ShortForm(),
				LongForm:    v.LongForm(),
				Ordered:     v.OrderedVersion(),
				FileVersion: v.FileVersion(false),
				Quality:     v.Quality().String(),
			}
			return writeOut(cmd.OutOrStdout(), format, info, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n  short:   %s\n  long:    %s\n  ordered: %d\n  file:    %s\n  quality: %s\n",
					info.Normalized, info.ShortForm, info.LongForm, info.Ordered, info.FileVersion, info.Quality)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func newNextCmd() *cobra.Command {
	var patchesOnly bool
	var format string
	cmd := &cobra.Command{
		Use:   "next VERSION",
		Short: "List the direct successors of a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := csemver.Parse(args[0])
			if err != nil {
				return err
			}
			var out []string
			for _, s := range v.DirectSuccessors(patchesOnly) {
				out = append(out, s.String())
			}
			return writeOut(cmd.OutOrStdout(), format, out, func(w io.Writer) {
				for _, s := range out {
					fmt.Fprintln(w, s)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&patchesOnly, "patches-only", false, "restrict the enumeration to patch-level successors")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func newQualityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quality VERSION",
		Short: "Print the package quality of a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := semver.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), bound.VersionQuality(v))
			return nil
		},
	}
}

func newSatisfiesCmd() *cobra.Command {
	var syntax string
	var includePrerelease bool
	cmd := &cobra.Command{
		Use:   "satisfies RANGE VERSION",
		Short: "Check a version against an npm or NuGet range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r bound.ParseResult
			switch syntax {
			case "npm":
				r = bound.ParseNPM(args[0], includePrerelease)
			case "nuget":
				r = bound.ParseNuGet(args[0])
			default:
				return fmt.Errorf("unknown range syntax %q (want npm or nuget)", syntax)
			}
			if r.Error != nil {
				return r.Error
			}
			if r.IsApproximated {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: range %q is approximated as %s\n", args[0], r.Bound)
			}
			v, err := semver.Parse(args[1])
			if err != nil {
				return err
			}
			if !r.Bound.Satisfy(v) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s does not satisfy %s\n", v, r.Bound)
				os.Exit(2)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s satisfies %s\n", v, r.Bound)
			return nil
		},
	}
	cmd.Flags().StringVar(&syntax, "syntax", "npm", "range syntax: npm or nuget")
	cmd.Flags().BoolVar(&includePrerelease, "include-prerelease", false, "accept prerelease versions by default (npm only)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}

func writeOut(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		return yaml.NewEncoder(w).Encode(v)
	case "text":
		text(w)
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
