package unlabeled

// maxEdgeCost bounds any real cost matrix entry, including grid.Inf for a
// disconnected start/goal pair: it stands in for "no edge" and seeds the
// per-row slack search below.
const maxEdgeCost = 1 << 40

// assignMinCost solves the square assignment problem: given an n x n cost
// matrix, return perm such that perm[i] is the column matched to row i and
// sum(cost[i][perm[i]]) is minimal over all permutations.
//
// This is the dual-potential (successive shortest augmenting path)
// formulation of the Hungarian algorithm: rowPotential/colPotential
// maintain dual feasibility (rowPotential[i]+colPotential[j] <= cost[i][j]);
// each outer iteration grows the equality subgraph by the smallest slack,
// Dijkstra-style, until an unmatched column is reached, then flips the
// alternating path recorded in augmentedVia. O(n^3) time, O(n^2) space. A
// 1-indexed dummy row/column (index 0) represents "currently being
// assigned" so the flip step needs no special-casing for the path's start.
func assignMinCost(cost [][]int) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}

	rowPotential := make([]int, n+1)
	colPotential := make([]int, n+1)
	colMatch := make([]int, n+1)   // colMatch[j] = row (1-indexed) matched to column j, 0 = unmatched
	augmentedVia := make([]int, n+1)

	for row := 1; row <= n; row++ {
		colMatch[0] = row
		col0 := 0
		minSlack := make([]int, n+1)
		visited := make([]bool, n+1)
		for j := range minSlack {
			minSlack[j] = maxEdgeCost
		}

		for {
			visited[col0] = true
			curRow := colMatch[col0]
			delta, nextCol := maxEdgeCost, -1
			for j := 1; j <= n; j++ {
				if visited[j] {
					continue
				}
				slack := cost[curRow-1][j-1] - rowPotential[curRow] - colPotential[j]
				if slack < minSlack[j] {
					minSlack[j] = slack
					augmentedVia[j] = col0
				}
				if minSlack[j] < delta {
					delta = minSlack[j]
					nextCol = j
				}
			}
			for j := 0; j <= n; j++ {
				if visited[j] {
					rowPotential[colMatch[j]] += delta
					colPotential[j] -= delta
				} else {
					minSlack[j] -= delta
				}
			}
			col0 = nextCol
			if colMatch[col0] == 0 {
				break
			}
		}

		for col0 != 0 {
			prevCol := augmentedVia[col0]
			colMatch[col0] = colMatch[prevCol]
			col0 = prevCol
		}
	}

	perm := make([]int, n)
	for j := 1; j <= n; j++ {
		if colMatch[j] != 0 {
			perm[colMatch[j]-1] = j - 1
		}
	}
	return perm
}
