// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reduce

// configs stores the tunable parameters of a BDD. Of the teacher's six
// knobs only the node-table's initial capacity survives: the cache-size,
// cache-ratio, max-node-size, max-node-increase and min-free-nodes knobs
// all existed to tune a garbage collector this engine does not have, since
// every BDD here is built once for a single query and then discarded.
type configs struct {
	varnum   int // number of BDD variables
	nodesize int // initial capacity of the node table
}

func makeconfigs(varnum int) *configs {
	return &configs{
		varnum:   varnum,
		nodesize: 2*varnum + 2,
	}
}

// Nodesize is a configuration option for New: it raises the preferred
// initial capacity of the node table, the one tuning knob worth keeping
// once resizing-under-GC is no longer a concern. By default the table is
// sized to hold exactly the two constants and one node per Ithvar/NIthvar.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}
