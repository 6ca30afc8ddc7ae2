// Command stations is a small inspection tool for the IMGW-PIB API. It lists
// station directories or dumps one station's current normalized observation
// as JSON.
//
// Usage:
//
//	go run ./cmd/stations -list weather
//	go run ./cmd/stations -list hydro
//	go run ./cmd/stations -kind weather -id 12375
//	go run ./cmd/stations -kind hydro -id 154190050
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/couchcryptid/imgw-data-etl/imgwpib"
)

func main() {
	list := flag.String("list", "", "list a station directory: weather or hydro")
	kind := flag.String("kind", "", "observation kind to fetch: weather or hydro")
	id := flag.String("id", "", "station id to fetch data for")
	flag.Parse()

	if *list == "" && (*kind == "" || *id == "") {
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if code := run(ctx, *list, *kind, *id); code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, list, kind, id string) int {
	httpClient := &http.Client{Timeout: 20 * time.Second}

	switch list {
	case "weather":
		return listDirectory(ctx, httpClient, true)
	case "hydro":
		return listDirectory(ctx, httpClient, false)
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown directory %q\n", list)
		return 1
	}

	var opt imgwpib.Option
	switch kind {
	case "weather":
		opt = imgwpib.WithWeatherStation(id)
	case "hydro":
		opt = imgwpib.WithHydrologicalStation(id)
	default:
		fmt.Fprintf(os.Stderr, "unknown kind %q\n", kind)
		return 1
	}

	client, err := imgwpib.NewClient(httpClient, opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create client: %v\n", err)
		return 1
	}
	if err := client.Initialize(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "initialize: %v\n", err)
		return 1
	}

	var data any
	if kind == "weather" {
		data, err = client.GetWeatherData(ctx)
	} else {
		data, err = client.GetHydrologicalData(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func listDirectory(ctx context.Context, httpClient *http.Client, weather bool) int {
	client, err := imgwpib.NewClient(httpClient)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create client: %v\n", err)
		return 1
	}

	var stations map[string]string
	if weather {
		err = client.UpdateWeatherStations(ctx)
		stations = client.WeatherStations()
	} else {
		err = client.UpdateHydrologicalStations(ctx)
		stations = client.HydrologicalStations()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch station list: %v\n", err)
		return 1
	}

	ids := make([]string, 0, len(stations))
	for id := range stations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		fmt.Printf("%-12s %s\n", id, stations[id])
	}
	fmt.Printf("\n%d stations\n", len(ids))
	return 0
}
