// Package search reports what each revision of a chain does to a table or to
// a replaceable entity (view, stored procedure or function).
//
// Findings are phrased per revision and hits are ranked by the revision's
// position in the chain, so the last hit is the latest revision touching the
// object:
//
//	hits := search.Collect(g, search.ForTable("user"), revisions)
//	for _, hit := range hits {
//		fmt.Println(hit) // 3d2fa4c1a9e0 created, column email added
//	}
package search
