// Package pkg provides the core libraries for kinetree forward kinematics.
//
// # Overview
//
// Kinetree models a robot as a tree of rigid links connected by joints
// and computes world-space poses over it. The pkg directory is organized
// into these areas:
//
//  1. [spatial] - Rigid transforms (rotation, translation, composition)
//  2. [link] - Links, joints, joint limits
//  3. [tree] - Generic parent/child tree with pre-order traversal
//  4. [robot] - Link trees, forward kinematics, kinematic chains
//  5. [model] - Model documents, TOML and URDF loaders
//  6. [render] - Graphviz diagrams of link trees
//  7. [cache], [store] - Pose cache and model store backends
//
// # Architecture
//
// The typical data flow through kinetree:
//
//	Model file (TOML/URDF)
//	         ↓
//	model.Document → robot.LinkTree
//	         ↓
//	SetJointAngles → ComputeLinkTransforms
//	         ↓
//	World poses / kinematic chains / diagrams
package pkg
