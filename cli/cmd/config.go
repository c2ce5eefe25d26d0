package cmd

import (
	"fmt"
	"io"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/manifest/pkg"
	"github.com/ardnew/manifest/profile"
)

// ConfigSection is the configuration file section holding the flags that do
// not belong to a flag group.
const ConfigSection = pkg.Name

// configGroups are the flag name prefixes stored in a section of their own.
var configGroups = []string{"log", profile.Tag}

// ConfigKey returns the section and key under which the flag with the given
// name is stored in the configuration file.
//
// Grouped flags drop their prefix: "log-level" is key "level" of section
// "log". Other flags keep their name in [ConfigSection].
func ConfigKey(flag string) (section, key string) {
	for _, group := range configGroups {
		if k, ok := strings.CutPrefix(flag, group+"-"); ok {
			return group, k
		}
	}

	return ConfigSection, flag
}

// configValues collects the current value of every configurable flag, by
// section and key, in manifest value syntax.
func configValues(ktx *kong.Context) map[string]map[string]string {
	sections := make(map[string]map[string]string)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || !configurable(flag.Name) {
			continue
		}

		value, ok := configValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		section, key := ConfigKey(flag.Name)
		if sections[section] == nil {
			sections[section] = make(map[string]string)
		}

		sections[section][key] = value
	}

	return sections
}

func configurable(name string) bool {
	switch name {
	case "help", "version":
		return false
	}

	return !strings.HasPrefix(name, profile.Tag)
}

// configValue formats v as a manifest value. Empty strings and nil values
// are not written.
func configValue(v any) (string, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Invalid:
		return "", false

	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true

	case reflect.String:
		if rv.Len() == 0 {
			return "", false
		}

		return strconv.Quote(rv.String()), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true

	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	}

	return strconv.Quote(fmt.Sprint(v)), true
}

// writeConfig writes sections in manifest syntax, sections and keys sorted.
func writeConfig(w io.Writer, sections map[string]map[string]string) error {
	for i, name := range slices.Sorted(maps.Keys(sections)) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
			return err
		}

		entries := sections[name]
		for _, key := range slices.Sorted(maps.Keys(entries)) {
			if _, err := fmt.Fprintf(w, "%s = %s\n", key, entries[key]); err != nil {
				return err
			}
		}
	}

	return nil
}
