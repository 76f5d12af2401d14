package cmd

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// tracer traces with key 'nledit'
func tracer() tracing.Trace {
	return tracing.Select("nledit")
}

func init() {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
}

// setupTracing routes all tracers of nledit through the adapter named by
// backend, at the given level. dest is an optional file URI for the output.
func setupTracing(level, backend, dest string) error {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend != "go" && backend != "logrus" {
		return fmt.Errorf("unknown tracer %q, expected go or logrus", backend)
	}
	switch strings.ToLower(level) {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("unknown trace level %q, expected Error, Info or Debug", level)
	}
	conf := testconfig.Conf{
		"tracing.adapter":   backend,
		"tracelevel.root":   level,
		"tracelevel.nledit": level,
	}
	if dest != "" {
		conf["tracing.destination"] = dest
	}
	if err := trace2go.ConfigureRoot(conf, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("tracing with %s at level %s", backend, level)
	return nil
}
