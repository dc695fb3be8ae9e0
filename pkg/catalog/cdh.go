package catalog

// cdhManifest returns the identities and directories needed by Cloudera
// Distribution including Hadoop.
func cdhManifest() *Manifest {
	smoke := ProxyMember{Name: "cloudera-scm", Kind: KindUser}
	hadoop := ProxyMember{Name: "hadoop", Kind: KindGroup}

	return &Manifest{
		Distribution: "cdh",
		Identities: buildIdentities([]userDecl{
			{name: "accumulo"},
			{name: "anonymous"},
			{name: "apache"},
			{name: "cloudera-scm"},
			{name: "cmjobuser"},
			{name: "flume"},
			{name: "hbase", secondaryGroups: []string{"hadoop", "supergroup"}},
			{name: "hdfs", secondaryGroups: []string{"hadoop", "supergroup"}},
			{name: "hive"},
			{name: "HTTP", secondaryGroups: []string{"hadoop", "supergroup"}},
			{name: "httpfs"},
			{name: "hue"},
			{name: "impala", secondaryGroups: []string{"hive"}},
			{name: "kafka"},
			{name: "keytrustee"},
			{name: "kms"},
			{name: "kudu"},
			{name: "llama"},
			{name: "mapred", secondaryGroups: []string{"hadoop", "supergroup"}},
			{name: "oozie"},
			{name: "sentry"},
			{name: "solr"},
			{name: "spark"},
			{name: "sqoop", secondaryGroups: []string{"sqoop2"}},
			{name: "sqoop2", secondaryGroups: []string{"sqoop"}},
			{name: "yarn", secondaryGroups: []string{"hadoop", "supergroup"}},
			{name: "zookeeper"},
		}),
		ProxyUsers: []ProxyUserEntry{
			{Name: "flume", Members: []ProxyMember{smoke, hadoop}},
			{Name: "hive", Members: []ProxyMember{smoke, hadoop}},
			{Name: "HTTP", Members: []ProxyMember{smoke}},
			{Name: "hue", Members: []ProxyMember{smoke, hadoop}},
			{Name: "impala", Members: []ProxyMember{smoke, hadoop}},
			{Name: "mapred", Members: []ProxyMember{smoke, hadoop}},
			{Name: "oozie", Members: []ProxyMember{smoke, hadoop}},
		},
		Directories: []DirectoryRule{
			{Path: "/", Mode: 0o755, Owner: "hdfs", Group: "hadoop"},
			{Path: "/hbase", Mode: 0o755, Owner: "hbase", Group: "hbase"},
			{Path: "/solr", Mode: 0o775, Owner: "solr", Group: "solr"},
			{Path: "/tmp", Mode: 0o1777, Owner: "hdfs", Group: "supergroup"},
			{Path: "/tmp/hive", Mode: 0o777, Owner: "hive", Group: "supergroup"},
			{Path: "/tmp/logs", Mode: 0o1777, Owner: "mapred", Group: "hadoop"},
			{Path: "/user", Mode: 0o755, Owner: "hdfs", Group: "supergroup"},
			{Path: "/user/flume", Mode: 0o775, Owner: "flume", Group: "flume"},
			{Path: "/user/hdfs", Mode: 0o755, Owner: "hdfs", Group: "hdfs"},
			{Path: "/user/history", Mode: 0o777, Owner: "mapred", Group: "hadoop"},
			{Path: "/user/hive", Mode: 0o775, Owner: "hive", Group: "hive"},
			{Path: "/user/hive/warehouse", Mode: 0o1777, Owner: "hive", Group: "hive"},
			{Path: "/user/hue", Mode: 0o755, Owner: "hue", Group: "hue"},
			{Path: "/user/hue/.cloudera_manager_hive_metastore_canary", Mode: 0o777, Owner: "hue", Group: "hue"},
			{Path: "/user/impala", Mode: 0o775, Owner: "impala", Group: "impala"},
			{Path: "/user/oozie", Mode: 0o775, Owner: "oozie", Group: "oozie"},
			{Path: "/user/spark", Mode: 0o751, Owner: "spark", Group: "spark"},
			{Path: "/user/spark/applicationHistory", Mode: 0o1777, Owner: "spark", Group: "spark"},
			{Path: "/user/sqoop2", Mode: 0o775, Owner: "sqoop2", Group: "sqoop"},
			{Path: "/user/yarn", Mode: 0o755, Owner: "yarn", Group: "yarn"},
		},
	}
}
