// Command msf performs a one-shot feed pull against the MySportsFeeds
// API using a YAML config for version, credentials and storage backend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	msf "github.com/mysportsfeeds/mysportsfeeds-go"
	"github.com/mysportsfeeds/mysportsfeeds-go/config"
	"github.com/mysportsfeeds/mysportsfeeds-go/internal/logging"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// paramFlags collects repeated -param key=value flags.
type paramFlags map[string]string

func (p paramFlags) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p paramFlags) Set(value string) error {
	k, v, ok := strings.Cut(value, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	p[k] = v
	return nil
}

func main() {
	configPath := flag.String("config", "msf.yaml", "Path to configuration file")
	league := flag.String("league", "", "League identifier (e.g. nba)")
	season := flag.String("season", "", "Season identifier (e.g. 2016-2017-regular)")
	feedName := flag.String("feed", "", "Feed name (e.g. player_gamelogs)")
	format := flag.String("format", "json", "Output format: json, xml or csv")
	query := flag.String("query", "", "GJSON path to extract from a json payload")
	params := paramFlags{}
	flag.Var(params, "param", "Extra query parameter as key=value (repeatable)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("msf %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	if *league == "" || *feedName == "" {
		fmt.Fprintln(os.Stderr, "both -league and -feed are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *league, *season, *feedName, *format, *query, params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, league, season, feedName, format, query string, params map[string]string) error {
	client, err := msf.FromConfig(cfg)
	if err != nil {
		return err
	}
	defer logging.Sync()

	f, err := parseFormat(format)
	if err != nil {
		return err
	}

	res, err := client.GetData(context.Background(), msf.Request{
		League: league,
		Season: season,
		Feed:   feedName,
		Format: f,
		Params: params,
	})
	if err != nil {
		return err
	}

	if res.Status == msf.StatusNoData {
		fmt.Fprintln(os.Stderr, "data not modified and no stored copy available")
		return nil
	}
	return printPayload(res.Payload, f, query)
}

func parseFormat(s string) (msf.Format, error) {
	switch msf.Format(s) {
	case msf.FormatJSON, msf.FormatXML, msf.FormatCSV:
		return msf.Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q, valid formats are: json, xml, csv", s)
}

func printPayload(payload any, format msf.Format, query string) error {
	switch format {
	case msf.FormatJSON:
		raw, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		if query != "" {
			result := gjson.GetBytes(raw, query)
			if !result.Exists() {
				return fmt.Errorf("query %q matched nothing", query)
			}
			fmt.Println(result.String())
			return nil
		}
		fmt.Println(string(raw))
	case msf.FormatXML:
		fmt.Println(payload.(string))
	case msf.FormatCSV:
		rows, _ := payload.([][]string)
		for _, row := range rows {
			fmt.Println(strings.Join(row, ","))
		}
	}
	return nil
}
