package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"voyager/internal/modules/travel"
)

// readDocument decodes a JSON or YAML file into dst. YAML goes through JSON so the
// model's json tags and lenient decoders apply to both.
func readDocument(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = yamlToJSON(b)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func yamlToJSON(b []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalize(doc))
}

// normalize turns yaml's map[any]any nodes into JSON-encodable maps.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

// readBookings accepts either the {"bookings": …} response or the bare simulation.
func readBookings(path string) (travel.BookingResponse, error) {
	var wrapped struct {
		Bookings *travel.BookingSimulation `json:"bookings"`
	}
	if err := readDocument(path, &wrapped); err != nil {
		return travel.BookingResponse{}, err
	}
	if wrapped.Bookings != nil {
		return travel.BookingResponse{Bookings: *wrapped.Bookings}, nil
	}
	var sim travel.BookingSimulation
	if err := readDocument(path, &sim); err != nil {
		return travel.BookingResponse{}, err
	}
	return travel.BookingResponse{Bookings: sim}, nil
}

func emit(cmd *cobra.Command, out string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if out == "" {
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}
	return os.WriteFile(out, b, 0o644)
}
