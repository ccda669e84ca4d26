// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//nolint:gosec
package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/browser"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/hellovm/utils"
)

const (
	fsModeWrite = 0o600

	MetricsPath = "/ext/metrics"
)

// Panels charted by the generated dashboard.
var Panels = []string{
	"increase(vm_invocations[5s])/5",
	"increase(vm_invocations_failed[5s])/5",
	"increase(vm_state_changes[5s])/5",
	"increase(vm_events_dropped[5s])/5",
	"histogram_quantile(0.99, rate(vm_commit_latency_bucket[30s]))/1000000",
	"histogram_quantile(0.99, rate(pebble_read_latency_bucket[30s]))",
	"pebble_active_compactions",
}

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusConfig struct {
	Global struct {
		ScrapeInterval     string `yaml:"scrape_interval"`
		EvaluationInterval string `yaml:"evaluation_interval"`
	} `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

// WritePrometheusConfig writes a scrape config targeting [uris] to
// [prometheusFile] and returns a dashboard link rooted at [baseURI].
func WritePrometheusConfig(baseURI string, uris []string, prometheusFile string) (string, error) {
	endpoints := make([]string, len(uris))
	for i, uri := range uris {
		purl, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		if len(purl.Host) == 0 {
			return "", fmt.Errorf("missing host in %q", uri)
		}
		endpoints[i] = purl.Host
	}

	var prometheusConfig PrometheusConfig
	prometheusConfig.Global.ScrapeInterval = "1s"
	prometheusConfig.Global.EvaluationInterval = "1s"
	prometheusConfig.ScrapeConfigs = []*PrometheusScrapeConfig{
		{
			JobName: "prometheus",
			StaticConfigs: []*PrometheusStaticConfig{
				{
					Targets: endpoints,
				},
			},
			MetricsPath: MetricsPath,
		},
	}
	yamlData, err := yaml.Marshal(&prometheusConfig)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(prometheusFile, yamlData, fsModeWrite); err != nil {
		return "", err
	}

	// We must manually encode the params because prometheus skips any panels
	// that are not numerically sorted and `url.params` only sorts
	// lexicographically.
	dashboard := baseURI + "/graph"
	for i, panel := range Panels {
		appendChar := "&"
		if i == 0 {
			appendChar = "?"
		}
		dashboard = fmt.Sprintf("%s%sg%d.expr=%s&g%d.tab=0&g%d.step_input=1&g%d.range_input=5m", dashboard, appendChar, i, url.QueryEscape(panel), i, i, i)
	}
	return dashboard, nil
}

func GeneratePrometheus(
	ctx context.Context,
	baseURI string,
	uris []string,
	openBrowser bool,
	startPrometheus bool,
	prometheusFile string,
	prometheusData string,
) error {
	dashboard, err := WritePrometheusConfig(baseURI, uris, prometheusFile)
	if err != nil {
		return err
	}

	if !startPrometheus {
		if !openBrowser {
			utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)

			// Emit command to run prometheus
			utils.Outf("{{green}}prometheus cmd:{{/}} /tmp/prometheus --config.file=%s --storage.tsdb.path=%s\n", prometheusFile, prometheusData)
			return nil
		}
		return browser.OpenURL(dashboard)
	}

	// Attempting to exit from the terminal will gracefully
	// stop this process.
	cmd := exec.CommandContext(ctx, "/tmp/prometheus", "--config.file="+prometheusFile, "--storage.tsdb.path="+prometheusData)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	errChan := make(chan error, 1)
	go func() {
		select {
		case <-errChan:
			return
		case <-time.After(5 * time.Second):
			if !openBrowser {
				utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)
				return
			}
			utils.Outf("{{cyan}}opening dashboard{{/}}\n")
			if err := browser.OpenURL(dashboard); err != nil {
				utils.Outf("{{red}}unable to open dashboard:{{/}} %s\n", err.Error())
			}
		}
	}()

	utils.Outf("{{cyan}}starting prometheus (/tmp/prometheus) in background{{/}}\n")
	if err := cmd.Run(); err != nil {
		errChan <- err
		utils.Outf("{{orange}}prometheus exited with error:{{/}} %v\n", err)
		return err
	}
	utils.Outf("{{cyan}}prometheus exited{{/}}\n")
	return nil
}
