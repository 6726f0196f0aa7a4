// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data generates noisy one-dimensional regression datasets.
//
// # Overview
//
// Generate samples a target function at evenly stepped x values, adds
// Gaussian noise, splits the samples into a training and a test set and
// linearly scales both into a common range. Prepared sets can be shuffled;
// copies in x order are kept next to them for plotting.
//
// # Basic Usage
//
//	cfg := data.DefaultGeneratorConfig()
//	cfg.TargetFunction = data.Exponential
//
//	ds, err := data.Generate(rand.New(rand.NewSource(1)), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, e := range ds.TestPreparedOriginalOrder {
//	    y, _ := network.Predict(e.X)
//	    fmt.Println(e.X[0], ds.UnscaleY(y[0]))
//	}
//
// # Test Selection
//
// With PickTestFromWholeSet the test samples are taken from across the whole
// x range, either at a fixed stride (TestIsEvenlyPicked) or at random.
// Otherwise the leading TrainTestSplitPercent of samples train and the rest
// test.
package data
