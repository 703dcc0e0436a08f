package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatValues returns valid output formats.
func FormatValues() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// IsValidFormat checks if format is valid
func IsValidFormat(format string) bool {
	for _, valid := range FormatValues() {
		if format == valid {
			return true
		}
	}
	return false
}

// Write renders reports in the given format.
func Write(w io.Writer, reports []AssetReport, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if reports == nil {
			reports = []AssetReport{}
		}
		return enc.Encode(reports)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatText, "":
		for i, r := range reports {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := writeText(w, r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format '%s', must be one of: %s",
			format, strings.Join(FormatValues(), ", "))
	}
}

func writeText(w io.Writer, r AssetReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.ID)
	fmt.Fprintf(&b, "  Title:        %s\n", orDash(r.Title))
	fmt.Fprintf(&b, "  Kind:         %s\n", r.Kind)
	if r.LivePhoto {
		fmt.Fprintf(&b, "  Live Photo:   yes\n")
	}
	fmt.Fprintf(&b, "  Subtype:      %d", r.Subtype)
	if len(r.SubtypeFlags) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(r.SubtypeFlags, ", "))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  MIME:         %s\n", orDash(r.MimeType))
	fmt.Fprintf(&b, "  Adjusted:     %v\n", r.Adjusted)
	if r.PairedVideoUTI != "" {
		fmt.Fprintf(&b, "  Paired video: %s\n", r.PairedVideoUTI)
	}
	fmt.Fprintf(&b, "  Resources:    %d\n", r.Resources)

	if p := r.Photo; p != nil {
		if p.CapturedAt != nil {
			fmt.Fprintf(&b, "  Captured:     %s\n", p.CapturedAt.Format("2006-01-02 15:04:05"))
		}
		if p.Device != "" {
			fmt.Fprintf(&b, "  Device:       %s\n", p.Device)
		}
		if p.Width > 0 && p.Height > 0 {
			fmt.Fprintf(&b, "  Size:         %dx%d\n", p.Width, p.Height)
		}
	}
	if v := r.Video; v != nil {
		fmt.Fprintf(&b, "  Length:       %s (%s)\n", v.Length, v.Source)
		if v.Width > 0 && v.Height > 0 {
			fmt.Fprintf(&b, "  Frame:        %dx%d %s\n", v.Width, v.Height, v.Codec)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
