package tagmap

import (
	"testing"
)

func TestCheckTagCollisions(t *testing.T) {
	// AAAA is contained in AAAACCC, and the reverse complement of AAAA
	// (TTTT) is contained in TTTTGGG
	var transform = NewTransform(Config{})
	transform.Sublibraries["LIB01"] = []*TagRecord{
		{ForwardTag: "AAAACCC", ReverseTag: "TTTTGGG", SampleName: "S1_16S"},
		{ForwardTag: "AAAA", ReverseTag: "GGCA", SampleName: "S2_16S"},
	}

	if got := transform.CheckTagCollisions(); got != 2 {
		t.Errorf("CheckTagCollisions() = %d; want 2", got)
	}
}

func TestCheckTagCollisionsPalindrome(t *testing.T) {
	// ACGT equals its own reverse complement and must not collide with
	// itself
	var transform = NewTransform(Config{})
	transform.Sublibraries["LIB01"] = []*TagRecord{
		{ForwardTag: "ACGT", ReverseTag: "GGCA", SampleName: "S1_16S"},
	}

	if got := transform.CheckTagCollisions(); got != 0 {
		t.Errorf("CheckTagCollisions() = %d; want 0", got)
	}
}

func TestCheckTagCollisionsReverseComplementPair(t *testing.T) {
	// TTTT is the reverse complement of AAAA, ambiguous in both read
	// orientations
	var transform = NewTransform(Config{})
	transform.Sublibraries["LIB01"] = []*TagRecord{
		{ForwardTag: "AAAA", ReverseTag: "TTTT", SampleName: "S1_16S"},
	}

	if got := transform.CheckTagCollisions(); got != 2 {
		t.Errorf("CheckTagCollisions() = %d; want 2", got)
	}
}

func TestCheckTagCollisionsClean(t *testing.T) {
	var transform = NewTransform(Config{})
	transform.Sublibraries["LIB01"] = []*TagRecord{
		{ForwardTag: "AACCGG", ReverseTag: "AATTGC", SampleName: "S1_16S"},
	}
	transform.Sublibraries["LIB02"] = []*TagRecord{
		{ForwardTag: "", ReverseTag: "", SampleName: "S2_16S"},
	}

	if got := transform.CheckTagCollisions(); got != 0 {
		t.Errorf("CheckTagCollisions() = %d; want 0", got)
	}
}
