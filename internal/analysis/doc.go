// Package analysis checks and explores built kinematic chains.
//
//   - [VerifyChain]: homogeneity, composability and symbolic/numeric agreement
//   - [Sweep]: end-effector positions while one joint variable varies
//   - [WorkspaceExtents]: bounding box of a sweep
//   - [WorkspaceToASCII]: planar scatter of swept tip positions
//
// # Verification
//
// A chain passes when every check holds within the tolerance:
//
//	report, err := analysis.VerifyChain(table, bindings, 1e-9)
//	if err == nil && report.OK() {
//	    // transform is rigid and the closed form agrees with the numbers
//	}
package analysis
