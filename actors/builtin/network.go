package builtin

// Wall-clock durations used by actors that schedule in seconds.
// Block timestamps are expressed in nanoseconds.
const NanosecondsInSecond = 1_000_000_000
const SecondsInHour = 3600
const SecondsInDay = 86400
const SecondsInYear = 31556925

// Upper bound on a seconds-denominated timestamp that can be converted to nanoseconds without overflow.
const MaxTimestampSeconds = ^uint64(0) / NanosecondsInSecond
