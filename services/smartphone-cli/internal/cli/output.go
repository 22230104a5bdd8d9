package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"smartphones/services/smartphone-cli/internal/client"
)

func printTable(w io.Writer, phones []client.Smartphone) {
	if len(phones) == 0 {
		fmt.Fprintln(w, "No smartphones found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOM\tMARQUE")
	for _, p := range phones {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID(), p.Nom(), p.Marque())
	}
	tw.Flush()
}

// printDetail writes every field, id first then the rest by key.
func printDetail(w io.Writer, phone client.Smartphone) {
	keys := make([]string, 0, len(phone))
	for k := range phone {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", phone.ID())
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", k, formatValue(phone[k]))
	}
	tw.Flush()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// parseAssignments turns key=value pairs into fields. Values that parse as
// JSON keep their type (prix=999 is a number); anything else is a string.
func parseAssignments(pairs []string) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", pair)
		}
		var value interface{}
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		fields[key] = value
	}
	return fields, nil
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
