// Package provenance reports, for every resolved parameter of an
// invocation, its value and where that value came from.
package provenance

import (
	"fmt"
	"strings"
	"time"

	"github.com/getmockd/clix/pkg/params"
	"github.com/getmockd/clix/pkg/resolve"
)

// Row describes one resolved parameter.
type Row struct {
	ID            string        `json:"id"`
	Spec          string        `json:"spec"`
	Type          string        `json:"type"`
	AllowedInConf bool          `json:"allowed_in_conf"`
	Exposed       bool          `json:"exposed"`
	AcceptsEnv    bool          `json:"accepts_env"`
	ShowEnv       bool          `json:"show_env"`
	EnvVars       []string      `json:"env_vars"`
	EnvVar        string        `json:"env_var,omitempty"`
	Default       any           `json:"default"`
	Value         any           `json:"value"`
	Source        params.Source `json:"source"`
}

// Report builds one row per resolved parameter, in resolution order. It
// only reads ctx.
func Report(ctx *resolve.Context) []Row {
	records := ctx.Params()
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row{
			ID:            r.ID,
			Spec:          r.Spec.Usage(),
			Type:          r.Spec.Type.String(),
			AllowedInConf: r.Spec.AllowedInConfig(),
			Exposed:       r.Spec.Exposed(),
			AcceptsEnv:    len(r.EnvVars) > 0,
			ShowEnv:       r.Spec.ShowEnv,
			EnvVars:       append([]string{}, r.EnvVars...),
			EnvVar:        r.EnvVar,
			Default:       portable(r.Default),
			Value:         portable(r.Value),
			Source:        r.Source,
		})
	}
	return rows
}

// portable turns durations into their string form so every output format
// shows the same text.
func portable(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}

// Headers are the column titles, in column order.
var Headers = []string{
	"ID", "Spec.", "Type", "Allowed in conf?", "Exposed", "Accepts env?",
	"Show env?", "Env. vars.", "Default", "Value", "Source",
}

// Cells renders the row as text cells matching Headers.
func (r Row) Cells() []string {
	return []string{
		r.ID,
		r.Spec,
		r.Type,
		check(r.AllowedInConf),
		check(r.Exposed),
		check(r.AcceptsEnv),
		check(r.ShowEnv),
		strings.Join(r.EnvVars, ", "),
		display(r.Default),
		display(r.Value),
		r.Source.String(),
	}
}

func check(b bool) string {
	if b {
		return "✓"
	}
	return "✘"
}

func display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	}
	return fmt.Sprint(v)
}
