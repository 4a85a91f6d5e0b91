// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/ttoda/allsat"
	"github.com/ttoda/allsat/reduce"
)

// runReduce drives the optional §12 reduced-BDD post-pass: it replays the
// solver's unreduced OBDD through the reduce engine's hash-consed Ite and
// reports the resulting node count, a size the unreduced OBDD itself cannot
// report since sharing is exactly what reduction adds.
func runReduce(log *logrus.Logger, s *allsat.Solver) error {
	bdd, _, err := reduce.BuildOracle(s.Varnum(), nil)
	if err != nil {
		return err
	}
	n := reduce.ReplayOBDD(bdd, s.OBDD())
	count := bdd.Satcount(n)
	log.WithFields(logrus.Fields{
		"reduced_nodes":  bdd.Size(n),
		"reduced_models": count.String(),
	}).Info("reduced-BDD post-pass complete")
	return nil
}
