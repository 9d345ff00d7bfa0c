package store_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/ratelaw"
	"github.com/katalvlaran/enzfit/store"
)

func ExampleRepository() {
	ctx := context.Background()

	ds := dataset.NewSingleSubstrate("assay")
	_ = ds.AddReplicateText("0.5, 1, 2, 4", "2.0 3.3 5.0 6.7")
	mm, _ := ratelaw.New(ratelaw.MichaelisMenten, ratelaw.Env{})

	p := store.NewProject("assay")
	p.SetSingle(ds)
	p.AddLaws(mm)

	repo := store.NewRepository(store.NewMemory(), store.WithCodec(store.CodecZstd))
	if err := repo.Save(ctx, p); err != nil {
		fmt.Println(err)
		return
	}
	got, err := repo.Load(ctx, p.ID)
	if err != nil {
		fmt.Println(err)
		return
	}
	restored, _ := got.SingleDataset()
	fmt.Println(got.Name, restored.Points(), got.Models[0].Kind)
	// Output: assay 4 mm
}
