// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train fits an nn.Network to a dataset with mini-batch
// backpropagation.
//
// # Overview
//
// A Trainer accumulates per-sample gradients over each batch, averages them
// and hands them to an optimizer. Training stops at fixed yield points so a
// host can redraw the network between batches:
//
//   - YieldBatch after every BatchesPerYield-th batch
//   - YieldEpochTrained once every batch of an epoch has run
//   - YieldTest periodically while the test set is evaluated
//   - YieldEpochEnd after the test set
//   - YieldDone after the last epoch
//
// # Basic Usage
//
//	tr, err := train.New(network, train.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = tr.Train(ctx, ds.TrainPrepared, ds.TestPrepared, func(p train.Progress) {
//	    if p.Yield == train.YieldEpochEnd {
//	        fmt.Println(p.Epoch, p.EpochErrors[len(p.EpochErrors)-1])
//	    }
//	})
//
// # Stepping
//
// A host with its own frame loop drives a Session instead:
//
//	s, err := tr.Begin(trainSet, testSet)
//	for !s.Done() {
//	    y, err := s.Step()
//	    if err != nil {
//	        break // ErrStopped after s.Stop()
//	    }
//	    render(tr.Network, s.Progress(y))
//	}
package train
