package extract

// flagSet is the set of flags that consume a following argument for one
// search-tool dialect. Misclassifying a value flag as boolean makes its
// value look like the search pattern, so these sets are per-tool and
// deliberately not shared.
type flagSet map[string]bool

// grepValueFlags covers POSIX/GNU grep and its egrep/fgrep aliases.
var grepValueFlags = flagSet{
	"-e": true, "--regexp": true,
	"-f": true, "--file": true,
	"-m": true, "--max-count": true,
	"-A": true, "--after-context": true,
	"-B": true, "--before-context": true,
	"-C": true, "--context": true,
	"-d": true, "--directories": true,
	"-D": true, "--devices": true,
	"--include": true, "--exclude": true, "--exclude-dir": true,
	"--exclude-from": true, "--binary-files": true, "--label": true,
	"--color": true, "--colour": true,
}

// rgValueFlags covers ripgrep. Notably -g/--glob and -t/--type take
// values, unlike anything in grep.
var rgValueFlags = flagSet{
	"-e": true, "--regexp": true,
	"-f": true, "--file": true,
	"-g": true, "--glob": true, "--iglob": true,
	"-t": true, "--type": true,
	"-T": true, "--type-not": true,
	"-m": true, "--max-count": true,
	"-A": true, "--after-context": true,
	"-B": true, "--before-context": true,
	"-C": true, "--context": true,
	"-j": true, "--threads": true,
	"-E": true, "--encoding": true,
	"-M": true, "--max-columns": true,
	"--max-depth": true, "--max-filesize": true,
	"--color": true, "--colors": true,
	"--sort": true, "--sortr": true,
	"--ignore-file": true, "--pre": true, "--path-separator": true,
	"--context-separator": true, "--field-context-separator": true,
	"--field-match-separator": true, "--replace": true, "-r": true,
}

// agValueFlags covers the silver searcher and ack, whose flag surfaces
// are close enough to share a table. -G filters files by regex and -g
// searches file names, both consuming a value.
var agValueFlags = flagSet{
	"-A": true, "--after": true,
	"-B": true, "--before": true,
	"-C": true, "--context": true,
	"-m": true, "--max-count": true,
	"-g": true, "-G": true, "--file-search-regex": true,
	"--ignore": true, "--ignore-dir": true,
	"--pager": true, "--color-match": true, "--color-path": true,
	"--color-line-number": true, "--depth": true,
	"--type": true,
}

// searchToolDialects maps a base command name to its value-flag table.
// Presence in this map is what marks a command as a search tool; find(1)
// is handled separately because its pattern lives behind -name/-path
// style primaries rather than positional arguments.
var searchToolDialects = map[string]flagSet{
	"grep":  grepValueFlags,
	"egrep": grepValueFlags,
	"fgrep": grepValueFlags,
	"rg":    rgValueFlags,
	"ag":    agValueFlags,
	"ack":   agValueFlags,
}

// findPatternFlags are the find(1) primaries whose following argument is
// a name/path/regex pattern worth extracting.
var findPatternFlags = flagSet{
	"-name": true, "-iname": true,
	"-path": true, "-ipath": true,
	"-regex": true, "-iregex": true,
}
