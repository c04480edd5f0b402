package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"int main(void) { return 0; }\n",
	"#define F(a, ...) a __VA_OPT__(, __VA_ARGS__)\nint x[] = { F(1), F(1, 2, 3) };\n",
	"#define STR(x) #x\n#define CAT(a, b) a ## b\nchar *s = STR(CAT(x, y));\n",
	"#ifdef X\nint a;\n#elifndef Y\nint b;\n#else\nint c;\n#endif\n",
	"#define f(x) x f\nf(1)(2)(3)\n",
	"typedef int T;\nvoid g(T t) { T u; { int T; T = 1; } }\n",
	"struct s { unsigned a : 3, : 0; union { int i; float f; }; } v = { .a = 1, [0] = 2 };\n",
	"int (*fp)(int, char *restrict, ...);\nint *const *volatile arr[static 3];\n",
	"x = a ? b : c ? d : e; y = (int)+-~!*&z; w = sizeof(int[2]) + alignof(long);\n",
	"char *u = u8\"a\" \"b\" L\"c\"; int c = '\\x41' + '\\n';\n",
	"a = 0x1p-3 + 1e+10f + 017 + 0b101 + 10ULL;\n",
	"#line 42 \"other.c\"\nint l = __LINE__; char *f = __FILE__;\n",
	"int f(void) { for (int i = 0; i < 10; i++) { if (i) continue; else break; } }\n",
	"/* unterminated",
	"#if\n#endif\n#endif\n",
	"??=define X\n",
	"a\\\nb \"split\\\nstring\"\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.c and *.h file under testdata/.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".c" && ext != ".h" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
