// Package harness runs sorting scenarios as executable contract tests.
//
// A scenario names an algorithm, an input and a list of assertions about
// the run: the final array, the frame count, the first or last frame, the
// outcome. Scenarios can also cancel the run after a fixed number of frames
// to pin down exactly what a cancelled run leaves behind.
//
// # Scenario Format
//
//	name: bubble_five
//	description: "Bubble sort on five values"
//	algorithm: bubble
//	input: [5, 3, 4, 1, 2]
//	cancel_after: 3          # optional
//	assertions:
//	  - type: sorted
//	  - type: permutation
//	  - type: frame_count
//	    count: 10
//	  - type: first_frame
//	    op: compare
//	    highlight: [0, 1]
//	    data: [3, 5, 4, 1, 2]
//
// Instead of input, a scenario may give size and seed; the input is then
// drawn from the same random source the CLI uses, over [1, 100].
//
// # Assertion Types
//
//   - final_array: the array after the run equals expect
//   - sorted: the final array is non-decreasing
//   - permutation: the final array holds the input's multiset
//   - frame_count: exactly count frames were emitted
//   - frame_count_range: between min and max frames, inclusive
//   - first_frame, last_frame: op, highlight and data of that frame
//   - outcome: the run ended as completed, cancelled or stopped
//
// # Deterministic Testing
//
// Every run uses a fixed run ID (the scenario's run_id, or
// "test-run-default") and discards logs, so the frame trace and its
// digest are byte-for-byte reproducible. RunWithGolden compares that
// trace against testdata/golden/<name>.golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/bubble_five.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
