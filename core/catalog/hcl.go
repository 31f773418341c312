package catalog

import (
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

//go:embed hyperstack_catalog.hcl
var defaultHyperstackCatalog []byte

// file is the on-disk catalog layout:
//
//	offering "n3-A100x1" {
//	  vcpus      = 28
//	  memory_gib = 120
//	  price      = 1.35
//	  regions    = ["CANADA-1", "NORWAY-1"]
//	  accelerator {
//	    name  = "A100"
//	    count = 1
//	  }
//	}
type file struct {
	Offerings []fileOffering `hcl:"offering,block"`
}

type fileOffering struct {
	InstanceType string           `hcl:"instance_type,label"`
	VCPUs        float64          `hcl:"vcpus"`
	MemoryGiB    float64          `hcl:"memory_gib"`
	Price        string           `hcl:"price"`
	SpotPrice    *string          `hcl:"spot_price,optional"`
	Regions      []string         `hcl:"regions"`
	Accelerator  *fileAccelerator `hcl:"accelerator,block"`
}

type fileAccelerator struct {
	Name  string `hcl:"name"`
	Count int    `hcl:"count"`
}

// LoadFile reads a catalog from an HCL (or HCL JSON, by extension) file
// and validates it
func LoadFile(cloud types.Provider, path string) (*Catalog, error) {
	var f file
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "load catalog %s", path)
	}
	return build(cloud, f)
}

// Parse decodes catalog source. filename selects the syntax and appears in
// diagnostics.
func Parse(cloud types.Provider, filename string, src []byte) (*Catalog, error) {
	var f file
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "parse catalog %s", filename)
	}
	return build(cloud, f)
}

// DefaultHyperstack returns the catalog compiled into the binary
func DefaultHyperstack() (*Catalog, error) {
	return Parse(types.ProviderHyperstack, "hyperstack_catalog.hcl", defaultHyperstackCatalog)
}

func build(cloud types.Provider, f file) (*Catalog, error) {
	var offerings []Offering
	for _, fo := range f.Offerings {
		price, err := decimal.NewFromString(fo.Price)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err, "offering %s: price", fo.InstanceType)
		}
		var spot *decimal.Decimal
		if fo.SpotPrice != nil {
			sp, err := decimal.NewFromString(*fo.SpotPrice)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeConfig, err, "offering %s: spot_price", fo.InstanceType)
			}
			spot = &sp
		}
		base := Offering{
			InstanceType: fo.InstanceType,
			VCPUs:        fo.VCPUs,
			MemoryGiB:    fo.MemoryGiB,
			Price:        price,
			SpotPrice:    spot,
		}
		if fo.Accelerator != nil {
			base.AcceleratorName = fo.Accelerator.Name
			base.AcceleratorCount = fo.Accelerator.Count
		}
		if len(fo.Regions) == 0 {
			return nil, errors.Newf(errors.TypeConfig, "offering %s: at least one region is required", fo.InstanceType)
		}
		for _, region := range fo.Regions {
			o := base
			o.Region = region
			offerings = append(offerings, o)
		}
	}

	c := NewCatalog(cloud, offerings)
	if err := c.Validate(DefaultValidationRules()); err != nil {
		return nil, fmt.Errorf("invalid %s catalog: %w", cloud, err)
	}
	return c, nil
}
