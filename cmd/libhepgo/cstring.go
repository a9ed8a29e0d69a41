package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// cString returns a C copy of s; release it with freeCString.
func cString(s string) *C.char { return C.CString(s) }

func freeCString(s *C.char) { C.free(unsafe.Pointer(s)) }
