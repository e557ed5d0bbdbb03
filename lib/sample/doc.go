// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package sample defines the envelope type carried through the logging
// pipeline: a simulation timestamp paired with one sensor reading.
//
// A Payload is a tagged variant over the four reading shapes the
// pipeline knows: a scalar, a fixed 3-vector, a variable point list
// (lidar), and a variable flat buffer (image rows, actuator command
// pairs). The shape of a stream is fixed for the lifetime of a run;
// the Kind tag travels with every payload so persisted logs are
// self-describing.
//
// Envelopes are immutable by convention: constructed once by the
// acquisition loop, handed to a queue, consumed by exactly one writer.
// Nothing mutates a payload after construction.
package sample
