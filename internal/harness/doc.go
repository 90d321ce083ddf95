// Package harness runs rewrite scenarios as executable contract tests.
//
// A scenario feeds a page through the full rule pipeline, optionally triggers
// user events afterwards, and checks the resulting document.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: fab_left
//	description: "Buttons next to a FAB trigger become its floating buttons"
//	input: '<div id="rb"><button class="btn fixed-action-btn">...</button></div>'
//	# or: input_file: pages/fab.html (relative to the scenario file)
//	prefix: "#R1"          # optional item prefix
//	runs: 2                # run the pipeline this many times (default 1)
//	messages:              # optional message catalog entries
//	  APEX.IG.SEARCH: "Find"
//	events:
//	  - type: click
//	    target: ".ma-toast-close"
//	assertions:
//	  - type: count
//	    selector: ".fixed-action-btn ul li"
//	    count: 2
//	  - type: attr
//	    selector: "#b1"
//	    attr: data-tooltip
//	    value: Edit
//
// # Assertion Types
//
//   - exists: at least one element matches selector
//   - count: exactly count elements match selector
//   - attr: the first match has attribute attr equal to value
//   - has_class: every match carries class
//   - not_has_class: no match carries class
//   - text: the trimmed text of the first match equals text
//   - success: text was shown as a page success message
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory host page with a
// testutil.SequenceGenerator, so generated ids are ma-id-1, ma-id-2, ... and
// the rendered body is byte-stable for golden comparison.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/fab.yaml")
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
