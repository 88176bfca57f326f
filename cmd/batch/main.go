// entry point to the batch enhancer
package main

import (
	"github.com/ds124wfegd/image-enhancer/config"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/pipeline"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/processor"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/superres"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	params, err := pipeline.ByName(cfg.Batch.Variant)
	if err != nil {
		logrus.Fatalf("invalid pipeline variant: %s", err.Error())
	}

	var upscaler *superres.Upscaler
	if cfg.Batch.Legacy {
		params = pipeline.Aggressive()
		upscaler = superres.NewUpscaler(cfg.Batch.ModelPath)
	}

	runner := processor.NewRunner(cfg.Batch.InputDir, cfg.Batch.OutputDir, params, upscaler)
	if _, err := runner.Run(); err != nil {
		logrus.Errorf("batch run aborted: %s", err.Error())
	}
}
