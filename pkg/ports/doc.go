/*
Package ports defines the driven ports (interfaces) arbor talks to outside the tree.

# Key Interfaces

  - SnapshotStore: records the latest tick snapshot of each named tree so that
    other processes can observe a running tree. Stores are write-only from the
    engine's point of view; trees are never rebuilt from a snapshot.
*/
package ports
