// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and every metric it selects must be known.
package validate

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

// panelJSON is the subset of the Grafana dashboard model validation reads.
type panelJSON struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every Prometheus target in a built dashboard. Any
// value that marshals to the Grafana dashboard JSON model is accepted.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var model struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &model); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	var walk func(ps []panelJSON)
	walk = func(ps []panelJSON) {
		for _, p := range ps {
			if p.Type != "row" && len(p.Targets) == 0 {
				res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no targets", p.Title))
			}
			for _, t := range p.Targets {
				checkExpr(&res, p.Title, t.Expr, known)
			}
			walk(p.Panels)
		}
	}
	walk(model.Panels)

	return res
}

// Exprs validates rule expressions.
func Exprs(exprs []string, known map[string]bool) Result {
	var res Result
	for i, e := range exprs {
		checkExpr(&res, fmt.Sprintf("rule %d", i), e, known)
	}
	return res
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	if expr == "" {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: empty expression", where))
		return
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", where, err))
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[vs.Name] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})
}
