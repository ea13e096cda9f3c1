package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BlockPack/internal/importer"
	"github.com/piwi3910/BlockPack/internal/model"
	"github.com/piwi3910/BlockPack/internal/project"
)

// loadInput reads path as a job file or as a block list. Job files are
// decoded over defaults and block lists are wrapped in a job that carries
// them. Import warnings and row errors are logged; an import that yields no
// blocks is an error.
func loadInput(path string, defaults model.PackSettings, logger *log.Logger) (model.Job, bool, error) {
	if project.IsJobFile(path) {
		job, err := project.LoadJob(path, defaults)
		if err != nil {
			return model.Job{}, false, err
		}
		return job, true, nil
	}

	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		res = importer.ImportCSV(path)
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path)
	default:
		return model.Job{}, false, fmt.Errorf("unsupported input %s: want .toml, .json, .csv, .xlsx or .dxf", filepath.Base(path))
	}

	for _, w := range res.Warnings {
		logger.Warn(w, "file", filepath.Base(path))
	}
	for _, e := range res.Errors {
		logger.Error(e, "file", filepath.Base(path))
	}
	if len(res.Specs) == 0 {
		if len(res.Errors) > 0 {
			return model.Job{}, false, fmt.Errorf("import %s: %s", filepath.Base(path), res.Errors[0])
		}
		return model.Job{}, false, errors.New("import " + filepath.Base(path) + ": no blocks found")
	}
	logger.Debug("imported blocks", "file", filepath.Base(path), "entries", len(res.Specs), "blocks", res.Count())

	job := model.NewJob()
	job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	job.Settings = defaults
	job.Blocks = res.Specs
	return job, false, nil
}
