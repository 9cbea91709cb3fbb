package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-openaccount/pkg/model"
	"github.com/goliatone/go-openaccount/pkg/uischema"
	"github.com/goliatone/go-openaccount/pkg/widgets"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint UI schema documents against the canonical account form.\nWithout arguments the bundled document is checked.\n")
	}
	flag.Parse()

	form := model.AccountOpening()
	known := widgets.NewRegistry().Names()

	var violations []violation
	if paths := flag.Args(); len(paths) == 0 {
		store, err := uischema.Default()
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint embedded document: %v\n", err)
			os.Exit(1)
		}
		violations = lintStore(store, form, known)
	} else {
		for _, path := range paths {
			store, err := loadPath(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
				os.Exit(1)
			}
			violations = append(violations, lintStore(store, form, known)...)
		}
	}

	if len(violations) == 0 {
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	os.Exit(1)
}

func loadPath(path string) (*uischema.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return uischema.LoadFS(os.DirFS(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return uischema.Parse(data, path)
}

func lintStore(store *uischema.Store, form model.FormModel, widgets []string) []violation {
	var result []violation
	for _, op := range store.Operations() {
		result = append(result, lintOperation(op, form, widgets)...)
	}
	return result
}

func lintOperation(op uischema.Operation, form model.FormModel, widgets []string) []violation {
	base := []string{"operations", op.ID}

	if op.ID != form.OperationID {
		// Field and section checks against the wrong form would mislead, so
		// stop at the operation.
		return []violation{{
			file:     op.Source,
			location: formatLocation(base),
			message:  fmt.Sprintf("unknown operation %q (the module serves %q)", op.ID, form.OperationID),
		}}
	}

	declared := make(map[string]bool, len(form.Sections)+len(op.Sections))
	for _, section := range form.Sections {
		declared[section.ID] = true
	}
	for _, section := range op.Sections {
		declared[section.ID] = true
	}

	names := make([]string, 0, len(op.Fields))
	for name := range op.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []violation
	for _, name := range names {
		cfg := op.Fields[name]
		path := appendPath(base, "fields", name)

		if _, ok := form.Field(name); !ok {
			result = append(result, violation{
				file:     op.Source,
				location: formatLocation(path),
				message:  fmt.Sprintf("unknown field %q (fields: %s)", name, strings.Join(fieldNames(form), ", ")),
			})
			continue
		}
		if cfg.Section != "" && !declared[cfg.Section] {
			result = append(result, violation{
				file:     op.Source,
				location: formatLocation(path),
				message:  fmt.Sprintf("references undeclared section %q", cfg.Section),
			})
		}
		if cfg.Widget != "" && !contains(widgets, cfg.Widget) {
			result = append(result, violation{
				file:     op.Source,
				location: formatLocation(path),
				message:  fmt.Sprintf("unsupported widget %q (supported: %s)", cfg.Widget, strings.Join(widgets, ", ")),
			})
		}
	}

	return result
}

func fieldNames(form model.FormModel) []string {
	names := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	sort.Strings(names)
	return names
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
