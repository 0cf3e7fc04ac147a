// Package eigenframes rebuilds samples from their principal-component
// coordinates one component (or block of components) at a time, so you can
// watch a reconstruction sharpen frame by frame.
//
// 🚀 What is eigenframes?
//
//	A small, pure-Go pipeline that brings together:
//		• Dense linear algebra: row-major matrices, ranged multiply-accumulate, Jacobi eigen
//		• PCA: covariance + Jacobi, or gonum's thin SVD for image-sized inputs
//		• Incremental reconstruction: a lazy iter.Seq of partial products
//		• Datasets: numeric CSV and deterministic synthetic digit images
//		• Frame store: every snapshot persisted to SQLite, bit-exact
//
// ✨ Why incremental?
//
//   - Each frame costs one rank-k update, O(n·k·N), no matter how many came before
//   - Frames are independent copies; stop early and nothing else is computed
//   - Deterministic: the same inputs give the same frames, bit for bit
//
// Under the hood, everything is organized under these packages:
//
//	matrix/          Dense, kernels (Mul, MulAddRange, Transpose…), statistics, Eigen
//	pca/             Fit, Transform, InverseTransform, explained variance
//	reconstruct/     Reconstructor, Step, Steps() iter.Seq[Step]
//	dataset/         LoadCSV, WriteCSV, Synthetic, Grid, Render
//	framestore/      SQLite sessions & frames
//	cmd/eigenframes  CLI: run, frames list|show|delete
//
// Quick ASCII example, data (2×3) · basis (3×2) with block size 1:
//
//	frame 0: [1 0 | 0 0]
//	frame 1: [1 0 | 0 1]
//	frame 2: [3 2 | 1 2]   ← equals the full product
//
//	go install github.com/katalvlaran/eigenframes/cmd/eigenframes@latest
package eigenframes
