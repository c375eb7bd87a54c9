package jsonconv

import (
	"reflect"
	"testing"
)

type backList struct{ items []int }

func (l *backList) PushBack(v int) { l.items = append(l.items, v) }
func (l *backList) Range(fn func(int) bool) {
	for _, it := range l.items {
		if !fn(it) {
			return
		}
	}
}

type frontList struct{ items []string }

func (l *frontList) PushFront(v string) { l.items = append([]string{v}, l.items...) }
func (l *frontList) Range(fn func(string) bool) {
	for _, it := range l.items {
		if !fn(it) {
			return
		}
	}
}

type bothEnds struct{ items []int }

func (l *bothEnds) PushBack(v int)  { l.items = append(l.items, v) }
func (l *bothEnds) PushFront(v int) { l.items = append([]int{v}, l.items...) }
func (l *bothEnds) Range(fn func(int) bool) {
	for _, it := range l.items {
		if !fn(it) {
			return
		}
	}
}

type noIterate struct{}

func (n *noIterate) PushBack(v int) {}

type badRange struct{}

func (b *badRange) PushBack(v int)         {}
func (b *badRange) Range(fn func(int) int) {}

func TestContainerShapeOf(t *testing.T) {
	shape, ok := containerShapeOf(reflect.TypeFor[backList]())
	if !ok || shape.front || shape.elem != reflect.TypeFor[int]() {
		t.Fatalf("backList shape = %+v, %v", shape, ok)
	}

	shape, ok = containerShapeOf(reflect.TypeFor[frontList]())
	if !ok || !shape.front || shape.elem != reflect.TypeFor[string]() {
		t.Fatalf("frontList shape = %+v, %v", shape, ok)
	}

	// back insertion is probed before front insertion
	shape, ok = containerShapeOf(reflect.TypeFor[bothEnds]())
	if !ok || shape.front || shape.insert.Name != "PushBack" {
		t.Fatalf("bothEnds shape = %+v, %v", shape, ok)
	}

	if _, ok := containerShapeOf(reflect.TypeFor[noIterate]()); ok {
		t.Fatalf("missing Range should not probe as a container")
	}
	if _, ok := containerShapeOf(reflect.TypeFor[badRange]()); ok {
		t.Fatalf("wrong Range signature should not probe as a container")
	}
	if _, ok := containerShapeOf(reflect.TypeFor[int]()); ok {
		t.Fatalf("non-struct should not probe as a container")
	}
}

func TestShapePredicates(t *testing.T) {
	if !isStringLike(reflect.TypeFor[string]()) || isStringLike(reflect.TypeFor[[]byte]()) {
		t.Fatalf("isStringLike wrong")
	}
	if !isByteSlice(reflect.TypeFor[[]byte]()) || isByteSlice(reflect.TypeFor[[]int]()) {
		t.Fatalf("isByteSlice wrong")
	}
	if !isByteSlice(reflect.TypeFor[[]int8]()) || isByteLike(reflect.TypeFor[int16]()) {
		t.Fatalf("isByteLike wrong")
	}
	if !isOptionalLike(reflect.TypeFor[*int]()) || isOptionalLike(reflect.TypeFor[int]()) {
		t.Fatalf("isOptionalLike wrong")
	}
	if !isMapLike(reflect.TypeFor[map[string]int]()) || !isSliceLike(reflect.TypeFor[[]int]()) {
		t.Fatalf("container predicates wrong")
	}
	if !isFixedArray(reflect.TypeFor[[4]byte]()) || isFixedArray(reflect.TypeFor[[]byte]()) {
		t.Fatalf("isFixedArray wrong")
	}
}
