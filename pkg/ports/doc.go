/*
Package ports defines the driven ports (interfaces) for seedbed.

These interfaces decouple the configuration store, the artifact cache and the
scaffolder from concrete backends, so the same code runs against the local
filesystem, process memory or Redis.

# Key Interfaces

  - ArtifactStore: persists opaque artifact payloads under string keys.
  - Locker: serializes check-then-create sequences across goroutines or processes.

Reusable contract suites (RunArtifactStoreContract, RunLockerContract) verify
that an adapter honors the interface semantics.
*/
package ports
