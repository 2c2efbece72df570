package pylaunch

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed layers.json
var layerTableJSON []byte

// LayerARN is a parsed versioned layer identifier of the form
// arn:aws:lambda:<region>:<account>:layer:<name>:<version>.
type LayerARN struct {
	// Region is the deployment region the layer is published in.
	Region string

	// Account is the publishing account ID.
	Account string

	// Name is the layer name.
	Name string

	// Version is the numeric layer version, as a string.
	Version string
}

// String reassembles the ARN.
func (a LayerARN) String() string {
	return fmt.Sprintf("arn:aws:lambda:%s:%s:layer:%s:%s", a.Region, a.Account, a.Name, a.Version)
}

// ParseLayerARN parses a versioned layer ARN.
func ParseLayerARN(s string) (LayerARN, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 8 || parts[0] != "arn" || parts[2] != "lambda" || parts[5] != "layer" {
		return LayerARN{}, fmt.Errorf("invalid layer arn: %s", s)
	}
	return LayerARN{
		Region:  parts[3],
		Account: parts[4],
		Name:    parts[6],
		Version: parts[7],
	}, nil
}

var (
	layerTableOnce sync.Once
	layerTable     map[string]string
)

// loadLayerTable parses the embedded table once. The table is build-time
// data, so a parse failure is a programming error and panics.
func loadLayerTable() map[string]string {
	layerTableOnce.Do(func() {
		if err := json.Unmarshal(layerTableJSON, &layerTable); err != nil {
			panic(fmt.Sprintf("pylaunch: embedded layer table is invalid: %v", err))
		}
	})
	return layerTable
}

// LayerForRegion returns the versioned layer ARN the runtime is published
// under in the given region. The second return value is false for regions
// the layer has not been published to.
//
// The table is informational deployment metadata; nothing on the launch path
// consults it.
func LayerForRegion(region string) (string, bool) {
	arn, ok := loadLayerTable()[region]
	return arn, ok
}

// Regions returns the sorted list of regions the layer is published in.
func Regions() []string {
	table := loadLayerTable()
	regions := make([]string, 0, len(table))
	for region := range table {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
