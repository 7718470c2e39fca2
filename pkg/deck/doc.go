// Package deck is the layout engine: it maps normalized roadmap issues onto
// absolute slide geometry and emits the declarative operation batches that
// build the deck.
//
// # Architecture
//
// The package has three layers:
//
//   - Request builders ([NewHeaderSlide], [NewRoadmapSlide], [NewItemBox]):
//     pure functions from logical parameters + styling config to an ordered
//     operation batch and the IDs of the created elements. No side effects,
//     no network awareness.
//   - The column allocator ([Allocate]): computes (column, x, y) placements
//     for one slide's issues, tracking per-column occupancy in a counter map
//     freshly allocated per call.
//   - The assembler ([Builder]): drives the two-phase run — create slide
//     skeletons, then populate them with issue boxes — with one batch-execute
//     call per phase.
//
// Creation operations always precede the style and content operations that
// reference the same element ID, and every ID is a fresh UUID, so a batch can
// be applied in emitted order without forward references.
package deck
