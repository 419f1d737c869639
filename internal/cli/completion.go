package cli

import (
	"os"

	"github.com/posener/complete"
	"github.com/willabides/kongplete"
)

// Predictors returns the shell completion predictors referenced by
// predictor:"..." struct tags.
func Predictors() []kongplete.Option {
	return []kongplete.Option{
		kongplete.WithPredictor("store", StorePredictor()),
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	}
}

// StorePredictor completes store names from the configured base path
func StorePredictor() complete.Predictor {
	return complete.PredictFunc(func(complete.Args) []string {
		dir, err := configDir(os.Getenv("FA_CONFIG_DIR"))
		if err != nil {
			return nil
		}
		return storeNames(dir)
	})
}
